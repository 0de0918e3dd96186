package report

import (
	"context"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/infrastructure/pubsub"
	"github.com/civictrack/civictrack/internal/interfaces/http/handlers/common"
	"github.com/civictrack/civictrack/internal/shared/errors"
	"github.com/civictrack/civictrack/internal/shared/goroutine"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/utils"
)

const streamBufferSize = 64

// ReportEventSubscriber delivers report events until ctx is cancelled.
type ReportEventSubscriber interface {
	Subscribe(ctx context.Context, handler func(msg pubsub.ReportEventMessage)) error
}

// StreamHandler pushes report events to staff dashboards over SSE.
type StreamHandler struct {
	subscriber ReportEventSubscriber
	stream     *common.SSEStream
	logger     logger.Interface
}

func NewStreamHandler(subscriber ReportEventSubscriber, stream *common.SSEStream, logger logger.Interface) *StreamHandler {
	return &StreamHandler{subscriber: subscriber, stream: stream, logger: logger}
}

// StreamEvents handles GET /reports/events/stream?report_id=rpt_a,rpt_b
func (h *StreamHandler) StreamEvents(c *gin.Context) {
	if h.subscriber == nil {
		utils.ErrorResponseWithError(c, errors.NewServiceUnavailableError("event stream is not enabled"))
		return
	}

	filter := h.stream.ParseFilterIDs(c, "report_id")
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan common.SSEEvent, streamBufferSize)
	goroutine.SafeGo(h.logger, "report-event-stream", func() {
		defer close(events)
		err := h.subscriber.Subscribe(ctx, func(msg pubsub.ReportEventMessage) {
			if len(filter) > 0 && !slices.Contains(filter, msg.ReportID) {
				return
			}
			select {
			case events <- common.SSEEvent{Name: msg.Type, Data: msg}:
			default:
				h.logger.Warnw("dropping report event for slow stream client",
					"report_id", msg.ReportID,
					"event_id", msg.EventID,
				)
			}
		})
		if err != nil && ctx.Err() == nil {
			h.logger.Warnw("report event subscription ended", "error", err)
		}
	})

	h.stream.Setup(c)
	if !h.stream.SendInitialConnection(c) {
		return
	}
	h.logger.Infow("report event stream opened", "filters", len(filter))
	h.stream.Run(c, events, "report event stream")
}
