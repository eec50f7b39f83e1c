package fabric

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/nicmsg/ctrlmsg"
	"github.com/sarchlab/nicmsg/sim"
)

var _ = Describe("Fabric", func() {
	var (
		engine *sim.SerialEngine
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
	})

	It("should panic without an engine", func() {
		Expect(func() { MakeBuilder().Build("Cluster") }).To(Panic())
	})

	It("should move a short message between nodes", func() {
		f := MakeBuilder().WithEngine(engine).Build("Cluster")

		data := []byte("0123456789abcdef")
		buf := make([]byte, 16)
		send := ctrlmsg.NewSendReq([]ctrlmsg.IoVec{ctrlmsg.MakeIoVec(data)},
			16, 1, 1, 3, WorldGroup, true)
		recv := ctrlmsg.NewRecvReq([]ctrlmsg.IoVec{ctrlmsg.MakeIoVec(buf)},
			16, 1, 0, 3, WorldGroup, true, 0)

		sendReturned, recvReturned := false, false
		f.ProcessQueues(0).Send(send, func() { sendReturned = true })
		f.ProcessQueues(1).Recv(recv, func() { recvReturned = true })

		Expect(engine.Run()).To(Succeed())

		Expect(sendReturned).To(BeTrue())
		Expect(recvReturned).To(BeTrue())
		Expect(send.Protocol()).To(Equal(ctrlmsg.ProtocolEager))
		Expect(recv.Status()).To(Equal(ctrlmsg.Status{Rank: 0, Tag: 3, Count: 16}))
		Expect(buf).To(Equal(data))
	})

	It("should move a long message with a remote get", func() {
		f := MakeBuilder().WithEngine(engine).Build("Cluster")
		length := 64 << 10

		data := make([]byte, length)
		for i := range data {
			data[i] = byte(i)
		}
		buf := make([]byte, length)

		send := ctrlmsg.NewSendReq([]ctrlmsg.IoVec{ctrlmsg.MakeIoVec(data)},
			uint32(length), 1, 0, 1, WorldGroup, true)
		recv := ctrlmsg.NewRecvReq([]ctrlmsg.IoVec{ctrlmsg.MakeIoVec(buf)},
			uint32(length), 1, 1, 1, WorldGroup, true, 0)

		var sendAt, recvAt sim.VTimeInSec
		f.ProcessQueues(1).Send(send, func() { sendAt = engine.CurrentTime() })
		f.ProcessQueues(0).Recv(recv, func() { recvAt = engine.CurrentTime() })

		Expect(engine.Run()).To(Succeed())

		Expect(send.Protocol()).To(Equal(ctrlmsg.ProtocolRendezvous))
		Expect(buf).To(Equal(data))
		Expect(recvAt).To(BeNumerically(">", 0))
		Expect(sendAt).To(BeNumerically(">",
			4*f.CostModel().Config().WireLatency))
		Expect(f.Endpoint(1).Stats().Regions).To(Equal(0))
	})

	It("should loop messages between cores of a node", func() {
		f := MakeBuilder().
			WithEngine(engine).
			WithNumNodes(1).
			WithCoresPerNode(2).
			Build("Cluster")

		buf := make([]byte, 8)
		send := ctrlmsg.NewSendReq(
			[]ctrlmsg.IoVec{ctrlmsg.MakeIoVec([]byte("loopback"))},
			8, 1, 1, 0, WorldGroup, true)
		recv := ctrlmsg.NewRecvReq([]ctrlmsg.IoVec{ctrlmsg.MakeIoVec(buf)},
			8, 1, 0, 0, WorldGroup, true, 0)

		f.ProcessQueues(0).Send(send, nil)
		f.ProcessQueues(1).Recv(recv, nil)

		Expect(engine.Run()).To(Succeed())

		Expect(send.IsDone()).To(BeTrue())
		Expect(send.Protocol()).To(Equal(ctrlmsg.ProtocolLoopback))
		Expect(string(buf)).To(Equal("loopback"))
		Expect(f.Endpoint(0).Stats().BytesSent).To(BeZero())
	})

	It("should post more short buffers when the endpoint runs out", func() {
		f := MakeBuilder().
			WithEngine(engine).
			WithNumNodes(4).
			WithMinPostedShortBuffers(1).
			WithMaxPostedShortBuffers(2).
			Build("Cluster")

		recvs := make([]*ctrlmsg.CommReq, 0)
		for src := 1; src <= 3; src++ {
			send := ctrlmsg.NewSendReq([]ctrlmsg.IoVec{{Len: 8}},
				8, 1, 0, ctrlmsg.Tag(src), WorldGroup, true)
			f.ProcessQueues(ctrlmsg.NID(src)).Send(send, nil)

			recvs = append(recvs, ctrlmsg.NewRecvReq([]ctrlmsg.IoVec{{Len: 8}},
				8, 1, ctrlmsg.RankID(src), ctrlmsg.Tag(src), WorldGroup,
				true, 0))
		}

		var receive func(i int)
		receive = func(i int) {
			if i == len(recvs) {
				return
			}

			f.ProcessQueues(0).Recv(recvs[i], func() { receive(i + 1) })
		}
		f.Scheduler().SchedCallback(func() { receive(0) }, 1e-3)

		Expect(engine.Run()).To(Succeed())

		for _, r := range recvs {
			Expect(r.IsDone()).To(BeTrue())
		}
		Expect(f.Endpoint(0).Stats().HeldMessages).To(BeZero())
		Expect(f.ProcessQueues(0).Finish().UnexpectedMsgs).To(BeZero())
	})

	It("should register every endpoint with the simulation", func() {
		f := MakeBuilder().WithEngine(engine).WithNumNodes(3).Build("Cluster")
		s := sim.NewSimulation(engine)

		f.RegisterComponents(s)
		f.Finish(engine)

		Expect(s.Components()).To(HaveLen(6))
		Expect(s.GetComponentByName("Cluster.Node[2].Core[0].CtrlMsg")).
			To(BeIdenticalTo(f.ProcessQueues(2)))
		Expect(func() { engine.Finished() }).NotTo(Panic())
	})
})
