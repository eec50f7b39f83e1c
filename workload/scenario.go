package workload

import (
	"fmt"
	"sort"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

// A Scenario is a small cluster together with the programs that its ranks
// run.
type Scenario struct {
	Name         string
	Description  string
	NumNodes     int
	CoresPerNode int
	Programs     []Program

	// Check validates the results beyond what CheckResults does. It may be
	// nil.
	Check func(results []Result) error
}

// Pattern fills a buffer with bytes that depend on the seed, so that
// payloads from different senders can be told apart.
func Pattern(length int, seed byte) []byte {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = seed + byte(i*7)
	}

	return buf
}

// EagerMatch has a remote rank send a short typed message that the receiver
// posts a matching receive for.
func EagerMatch() Scenario {
	payload := Pattern(40, 2)

	programs := make([]Program, 3)
	programs[0].Ops = []Op{{
		Kind: OpRecv, Slot: 0, Peer: 2, Tag: 5,
		Count: 10, ElementSize: 4, Blocking: true, Expect: payload,
	}}
	programs[2].Ops = []Op{{
		Kind: OpSend, Slot: 0, Peer: 0, Tag: 5,
		Count: 10, ElementSize: 4, Blocking: true, Data: payload,
	}}

	return Scenario{
		Name:         "eager",
		Description:  "a 40-byte message matched against a posted receive",
		NumNodes:     3,
		CoresPerNode: 1,
		Programs:     programs,
		Check: func(results []Result) error {
			return expectStatus(results[0], 0, ctrlmsg.Status{
				Rank: 2, Tag: 5, Count: 10,
			}, ctrlmsg.ProtocolEager)
		},
	}
}

// WildcardOrder has two ranks send to a receiver that posts wildcard
// receives after both messages arrived. The messages match in arrival order.
func WildcardOrder() Scenario {
	programs := make([]Program, 3)
	programs[0].
		Compute(1e-3).
		Recv(0, ctrlmsg.AnySrc, ctrlmsg.AnyTag, 16, nil, true).
		Recv(1, ctrlmsg.AnySrc, ctrlmsg.AnyTag, 16, nil, true)
	programs[1].Send(0, 0, 11, Pattern(16, 1), true)
	programs[2].
		Compute(1e-4).
		Send(0, 0, 22, Pattern(16, 2), true)

	return Scenario{
		Name:         "wildcard",
		Description:  "wildcard receives match queued messages in arrival order",
		NumNodes:     3,
		CoresPerNode: 1,
		Programs:     programs,
		Check: func(results []Result) error {
			if err := expectStatus(results[0], 0, ctrlmsg.Status{
				Rank: 1, Tag: 11, Count: 16,
			}, ctrlmsg.ProtocolEager); err != nil {
				return err
			}

			return expectStatus(results[0], 1, ctrlmsg.Status{
				Rank: 2, Tag: 22, Count: 16,
			}, ctrlmsg.ProtocolEager)
		},
	}
}

// Rendezvous sends a message that is too long for the eager protocol.
func Rendezvous(length int) Scenario {
	payload := Pattern(length, 3)

	programs := make([]Program, 2)
	programs[0].Recv(0, 1, 7, length, payload, true)
	programs[1].Send(0, 0, 7, payload, true)

	return Scenario{
		Name:         "rendezvous",
		Description:  fmt.Sprintf("a %d-byte message sent with a remote get", length),
		NumNodes:     2,
		CoresPerNode: 1,
		Programs:     programs,
		Check: func(results []Result) error {
			if results[1].Protocols[0] != ctrlmsg.ProtocolRendezvous {
				return fmt.Errorf("send used %q", results[1].Protocols[0])
			}

			return expectStatus(results[0], 0, ctrlmsg.Status{
				Rank: 1, Tag: 7, Count: uint32(length),
			}, ctrlmsg.ProtocolRendezvous)
		},
	}
}

// Loopback sends a message between two cores of the same node.
func Loopback(length int) Scenario {
	payload := Pattern(length, 4)

	programs := make([]Program, 2)
	programs[0].Recv(0, 1, 9, length, payload, true)
	programs[1].Send(0, 0, 9, payload, false).Wait(0)

	return Scenario{
		Name:         "loopback",
		Description:  "a message between two cores of the same node",
		NumNodes:     1,
		CoresPerNode: 2,
		Programs:     programs,
		Check: func(results []Result) error {
			if results[1].Protocols[0] != ctrlmsg.ProtocolLoopback {
				return fmt.Errorf("send used %q", results[1].Protocols[0])
			}

			return expectStatus(results[0], 0, ctrlmsg.Status{
				Rank: 1, Tag: 9, Count: uint32(length),
			}, ctrlmsg.ProtocolLoopback)
		},
	}
}

// Burst has several ranks send to one receiver at the same time, so that the
// completions of the receiver arrive while it is still busy with earlier
// ones.
func Burst(senders int) Scenario {
	programs := make([]Program, senders+1)

	for i := 1; i <= senders; i++ {
		programs[0].Recv(i, ctrlmsg.RankID(i), ctrlmsg.Tag(i), 32,
			Pattern(32, byte(i)), false)
		programs[i].Send(0, 0, ctrlmsg.Tag(i), Pattern(32, byte(i)), true)
	}

	for i := 1; i <= senders; i++ {
		programs[0].Wait(i)
	}

	return Scenario{
		Name:         "burst",
		Description:  fmt.Sprintf("%d senders target one receiver at once", senders),
		NumNodes:     senders + 1,
		CoresPerNode: 1,
		Programs:     programs,
	}
}

// PingPong bounces a message between two ranks on different nodes.
func PingPong(iterations, length int) Scenario {
	programs := make([]Program, 2)

	for i := 0; i < iterations; i++ {
		ping := Pattern(length, byte(2*i))
		pong := Pattern(length, byte(2*i+1))

		programs[0].
			Send(0, 1, ctrlmsg.Tag(i), ping, true).
			Recv(1, 1, ctrlmsg.Tag(i), length, pong, true)
		programs[1].
			Recv(1, 0, ctrlmsg.Tag(i), length, ping, true).
			Send(0, 0, ctrlmsg.Tag(i), pong, true)
	}

	return Scenario{
		Name: "pingpong",
		Description: fmt.Sprintf("%d round trips of %d bytes",
			iterations, length),
		NumNodes:     2,
		CoresPerNode: 1,
		Programs:     programs,
	}
}

// Catalog returns the reference scenarios by name.
func Catalog() map[string]Scenario {
	scenarios := []Scenario{
		EagerMatch(),
		WildcardOrder(),
		Rendezvous(1 << 20),
		Loopback(256),
		Burst(4),
	}

	catalog := make(map[string]Scenario, len(scenarios))
	for _, s := range scenarios {
		catalog[s.Name] = s
	}

	return catalog
}

// Names returns the names of the reference scenarios in order.
func Names() []string {
	names := make([]string, 0)
	for name := range Catalog() {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RoundTripTime returns the average time of one ping-pong iteration.
func RoundTripTime(results []Result, iterations int) sim.VTimeInSec {
	if iterations == 0 {
		return 0
	}

	return results[0].FinishTime / sim.VTimeInSec(iterations)
}

func expectStatus(
	r Result,
	slot int,
	want ctrlmsg.Status,
	protocol string,
) error {
	got, ok := r.Statuses[slot]
	if !ok {
		return fmt.Errorf("rank %d: no status for slot %d", r.Rank, slot)
	}

	if got != want {
		return fmt.Errorf("rank %d: slot %d got %+v, want %+v",
			r.Rank, slot, got, want)
	}

	if r.Protocols[slot] != protocol {
		return fmt.Errorf("rank %d: slot %d used %q, want %q",
			r.Rank, slot, r.Protocols[slot], protocol)
	}

	return nil
}
