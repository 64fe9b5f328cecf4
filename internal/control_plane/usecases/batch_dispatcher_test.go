package usecases_test

import (
	"context"
	"errors"
	"strings"

	"lostmode-dispatcher/internal/control_plane/usecases"
	"lostmode-dispatcher/internal/infra/csvio"
	"lostmode-dispatcher/internal/shared_kernel/domain"
	mockusecases "lostmode-dispatcher/test/unit/doubles/control_plane/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("BatchDispatcher", func() {
	var (
		ctrl       *gomock.Controller
		mockSender *mockusecases.MockCommandSender
		dispatcher *usecases.BatchDispatcher
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		mockSender = mockusecases.NewMockCommandSender(ctrl)
		dispatcher = usecases.NewBatchDispatcher(mockSender)
		ctx = context.Background()
	})

	ginkgo.AfterEach(func() {
		ctrl.Finish()
	})

	enableRecord := func(serial string) csvio.Record {
		return csvio.Record{
			"serial_number": serial,
			"message":       "Lost",
			"phone_number":  "5551234567",
		}
	}

	ginkgo.Context("empty input", func() {
		ginkgo.It("should report the empty batch without issuing any request", func() {
			result, err := dispatcher.Dispatch(ctx, nil, domain.OperationEnable)

			gomega.Expect(err).To(gomega.MatchError(usecases.ErrEmptyBatch))
			gomega.Expect(result.Outcomes).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("all rows valid", func() {
		ginkgo.It("should record one successful outcome per row in input order", func() {
			records := []csvio.Record{enableRecord("S1"), enableRecord("S2")}

			var sentPayloads []string
			mockSender.EXPECT().
				SendCommand(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, payload []byte) (int, error) {
					sentPayloads = append(sentPayloads, string(payload))
					return 201, nil
				}).
				Times(2)

			result, err := dispatcher.Dispatch(ctx, records, domain.OperationEnable)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Outcomes).To(gomega.HaveLen(2))
			gomega.Expect(result.Outcomes[0].SerialNumber).To(gomega.Equal("S1"))
			gomega.Expect(result.Outcomes[0].Success).To(gomega.BeTrue())
			gomega.Expect(result.Outcomes[0].StatusCode).To(gomega.Equal(201))
			gomega.Expect(result.Outcomes[1].SerialNumber).To(gomega.Equal("S2"))
			gomega.Expect(result.Outcomes[1].Success).To(gomega.BeTrue())

			gomega.Expect(sentPayloads[0]).To(gomega.ContainSubstring("<serial_number>S1</serial_number>"))
			gomega.Expect(sentPayloads[1]).To(gomega.ContainSubstring("<serial_number>S2</serial_number>"))
		})
	})

	ginkgo.Context("one row fails validation", func() {
		ginkgo.It("should skip the send for that row and continue with the rest", func() {
			invalid := csvio.Record{"serial_number": "S2", "message": "", "phone_number": "5551234567"}
			records := []csvio.Record{enableRecord("S1"), invalid, enableRecord("S3")}

			mockSender.EXPECT().
				SendCommand(gomock.Any(), payloadForSerial("S1")).
				Return(201, nil)
			mockSender.EXPECT().
				SendCommand(gomock.Any(), payloadForSerial("S3")).
				Return(201, nil)

			result, err := dispatcher.Dispatch(ctx, records, domain.OperationEnable)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Outcomes).To(gomega.HaveLen(3))
			gomega.Expect(result.Outcomes[0].Success).To(gomega.BeTrue())
			gomega.Expect(result.Outcomes[1].Success).To(gomega.BeFalse())
			gomega.Expect(result.Outcomes[1].SerialNumber).To(gomega.Equal("S2"))
			gomega.Expect(result.Outcomes[1].Error).To(gomega.ContainSubstring("message"))
			gomega.Expect(result.Outcomes[2].Success).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("transport failure", func() {
		ginkgo.It("should record the failure and keep dispatching", func() {
			records := []csvio.Record{enableRecord("S1"), enableRecord("S2")}

			mockSender.EXPECT().
				SendCommand(gomock.Any(), payloadForSerial("S1")).
				Return(502, errors.New("jamf API error: status 502"))
			mockSender.EXPECT().
				SendCommand(gomock.Any(), payloadForSerial("S2")).
				Return(201, nil)

			result, err := dispatcher.Dispatch(ctx, records, domain.OperationEnable)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Outcomes).To(gomega.HaveLen(2))
			gomega.Expect(result.Outcomes[0].Success).To(gomega.BeFalse())
			gomega.Expect(result.Outcomes[0].StatusCode).To(gomega.Equal(502))
			gomega.Expect(result.Outcomes[0].Error).To(gomega.Equal("failed to send lost mode command"))
			gomega.Expect(result.Outcomes[1].Success).To(gomega.BeTrue())
		})

		ginkgo.It("should record a network failure with no status code", func() {
			records := []csvio.Record{{"serial_number": "S1"}}

			mockSender.EXPECT().
				SendCommand(gomock.Any(), gomock.Any()).
				Return(0, errors.New("sending HTTP request: connection refused"))

			result, err := dispatcher.Dispatch(ctx, records, domain.OperationDisable)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(result.Outcomes).To(gomega.HaveLen(1))
			gomega.Expect(result.Outcomes[0].Success).To(gomega.BeFalse())
			gomega.Expect(result.Outcomes[0].StatusCode).To(gomega.BeZero())
		})
	})
})

// payloadForSerial matches a command document targeting one serial number.
func payloadForSerial(serial string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		payload, ok := x.([]byte)
		if !ok {
			return false
		}
		return strings.Contains(string(payload), "<serial_number>"+serial+"</serial_number>")
	})
}
