// Package fabric provides a simple cluster for the control-message layer to
// run on. Nodes have several cores, each core has its own endpoint, and all
// the endpoints are connected by lossless links with a fixed latency.
package fabric

import (
	"log"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// Fabric connects the endpoints of a cluster.
type Fabric struct {
	name         string
	sched        *sim.CallbackScheduler
	cost         LinearCostModel
	numNodes     int
	coresPerNode int

	endpoints []*Endpoint
	queues    []*ctrlmsg.ProcessQueues
	groupMaps []*GroupMap
}

// Name returns the name of the fabric.
func (f *Fabric) Name() string {
	return f.name
}

// Scheduler returns the scheduler that all the endpoints share.
func (f *Fabric) Scheduler() *sim.CallbackScheduler {
	return f.sched
}

// CostModel returns the cost model of the endpoints.
func (f *Fabric) CostModel() LinearCostModel {
	return f.cost
}

// NumEndpoints returns the number of endpoints.
func (f *Fabric) NumEndpoints() int {
	return len(f.endpoints)
}

// Endpoint returns the NIC of the endpoint.
func (f *Fabric) Endpoint(nid ctrlmsg.NID) *Endpoint {
	return f.mustGetEndpoint(nid)
}

// ProcessQueues returns the message layer of the endpoint.
func (f *Fabric) ProcessQueues(nid ctrlmsg.NID) *ctrlmsg.ProcessQueues {
	f.mustGetEndpoint(nid)
	return f.queues[nid]
}

// GroupMap returns the group map of the endpoint.
func (f *Fabric) GroupMap(nid ctrlmsg.NID) *GroupMap {
	f.mustGetEndpoint(nid)
	return f.groupMaps[nid]
}

// AddGroup defines a group on all the endpoints.
func (f *Fabric) AddGroup(group ctrlmsg.GroupID, members []ctrlmsg.NID) {
	for _, g := range f.groupMaps {
		g.AddGroup(group, members)
	}
}

// RegisterComponents registers the endpoints and their message layers with
// the simulation.
func (f *Fabric) RegisterComponents(s *sim.Simulation) {
	for i := range f.endpoints {
		s.RegisterComponent(f.endpoints[i])
		s.RegisterComponent(f.queues[i])
	}
}

// Finish registers the end-of-simulation summary of every message layer
// with the engine.
func (f *Fabric) Finish(engine sim.Engine) {
	for _, q := range f.queues {
		engine.RegisterSimulationEndHandler(q)
	}
}

func (f *Fabric) mustGetEndpoint(nid ctrlmsg.NID) *Endpoint {
	if nid < 0 || int(nid) >= len(f.endpoints) {
		log.Panicf("endpoint %d does not exist", nid)
	}

	return f.endpoints[nid]
}

func (f *Fabric) nodeOf(nid ctrlmsg.NID) int {
	return int(nid) / f.coresPerNode
}

func (f *Fabric) coreOf(nid ctrlmsg.NID) int {
	return int(nid) % f.coresPerNode
}

func (f *Fabric) nidOf(node, core int) ctrlmsg.NID {
	return ctrlmsg.NID(node*f.coresPerNode + core)
}
