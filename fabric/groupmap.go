package fabric

import (
	"log"

	"github.com/sarchlab/nicmsg/ctrlmsg"
)

// WorldGroup is the group that holds every endpoint, with the rank equal to
// the endpoint ID.
const WorldGroup ctrlmsg.GroupID = 0

// GroupMap resolves the ranks of the groups that one endpoint belongs to.
type GroupMap struct {
	self   ctrlmsg.NID
	groups map[ctrlmsg.GroupID][]ctrlmsg.NID
}

var _ ctrlmsg.GroupMap = (*GroupMap)(nil)

// NewGroupMap creates a GroupMap for the endpoint that only knows the world
// group of the given size.
func NewGroupMap(self ctrlmsg.NID, worldSize int) *GroupMap {
	world := make([]ctrlmsg.NID, worldSize)
	for i := range world {
		world[i] = ctrlmsg.NID(i)
	}

	return &GroupMap{
		self:   self,
		groups: map[ctrlmsg.GroupID][]ctrlmsg.NID{WorldGroup: world},
	}
}

// AddGroup defines a group. The rank of a member is its position in the list.
func (m *GroupMap) AddGroup(group ctrlmsg.GroupID, members []ctrlmsg.NID) {
	if _, ok := m.groups[group]; ok {
		log.Panicf("group %d already exists", group)
	}

	m.groups[group] = append([]ctrlmsg.NID(nil), members...)
}

// NID returns the endpoint of the rank in the group.
func (m *GroupMap) NID(group ctrlmsg.GroupID, rank ctrlmsg.RankID) ctrlmsg.NID {
	members := m.mustGetGroup(group)

	if rank < 0 || int(rank) >= len(members) {
		log.Panicf("rank %d is not in group %d of size %d",
			rank, group, len(members))
	}

	return members[rank]
}

// MyRank returns the rank of the endpoint in the group.
func (m *GroupMap) MyRank(group ctrlmsg.GroupID) ctrlmsg.RankID {
	for i, nid := range m.mustGetGroup(group) {
		if nid == m.self {
			return ctrlmsg.RankID(i)
		}
	}

	log.Panicf("endpoint %d is not a member of group %d", m.self, group)

	return ctrlmsg.AnySrc
}

func (m *GroupMap) mustGetGroup(group ctrlmsg.GroupID) []ctrlmsg.NID {
	members, ok := m.groups[group]
	if !ok {
		log.Panicf("group %d does not exist", group)
	}

	return members
}
