// Package oracle turns a consumer contract request into the encoded response
// the contract expects.
package oracle

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lensoracle/internal/abi"
	"lensoracle/internal/classifier"
	"lensoracle/internal/domain"
	"lensoracle/internal/lens"
	"lensoracle/internal/metrics"
)

// Config holds the response type tags understood by the consumer contract.
type Config struct {
	ResponseTag uint64 `koanf:"response_tag"`
	ErrorTag    uint64 `koanf:"error_tag"`
}

func DefaultConfig() Config {
	return Config{
		ResponseTag: uint64(domain.ResponseTypeResponse),
		ErrorTag:    uint64(domain.ResponseTypeError),
	}
}

// Stage names a step of one invocation.
type Stage int

const (
	StageDecoding Stage = iota
	StageTranslating
	StageFetching
	StageClassifying
	StageEncoding
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageDecoding:
		return "decoding"
	case StageTranslating:
		return "translating"
	case StageFetching:
		return "fetching"
	case StageClassifying:
		return "classifying"
	case StageEncoding:
		return "encoding"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Handler runs one request at a time to completion. It holds no state
// between invocations.
type Handler struct {
	fetcher lens.Fetcher
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewHandler(f lens.Fetcher, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		fetcher: f,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// Handle decodes request, fetches the profile's stats and returns the
// encoded response. Bad requests and undecodable API payloads are answered
// with an ERROR response. A FailedToFetchData error is returned instead so
// the caller can retry the whole invocation later.
func (h *Handler) Handle(ctx context.Context, request []byte, settings string) ([]byte, error) {
	log := h.logger.With(zap.String("invocation", uuid.NewString()))
	log.Info("handle req", zap.String("request", hexutil.Encode(request)))

	req, err := abi.DecodeRequest(request)
	if err != nil {
		log.Info("malformed request received", zap.Error(err))
		return h.fail(log, StageDecoding, new(big.Int), domain.NewError(domain.MalformedRequest, err)), nil
	}

	profileID, err := lens.ProfileIDFromBytes(req.ProfileID)
	if err != nil {
		return h.fail(log, StageTranslating, req.ID, err), nil
	}
	log.Info("request received for profile",
		zap.String("request_id", req.ID.String()),
		zap.String("profile_id", profileID))

	start := time.Now()
	stats, err := h.fetcher.FetchStats(ctx, settings, profileID)
	h.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		if domain.IsFatal(err) {
			log.Error("invocation failed",
				zap.Stringer("stage", StageFetching),
				zap.String("request_id", req.ID.String()),
				zap.Error(err))
			h.metrics.ObserveFatal()
			return nil, err
		}
		return h.fail(log, StageFetching, req.ID, err), nil
	}

	code := classifier.Classify(stats.TotalFollowers, stats.TotalFollowing)
	resp := domain.Response{
		Type:      domain.ResponseType(h.cfg.ResponseTag),
		RequestID: req.ID,
		Payload:   uint64(code),
	}
	log.Info("response",
		zap.Stringer("stage", StageDone),
		zap.Uint64("type", uint64(resp.Type)),
		zap.String("request_id", req.ID.String()),
		zap.Uint64("stat", resp.Payload),
		zap.Uint64("followers", stats.TotalFollowers),
		zap.Uint64("following", stats.TotalFollowing))
	h.metrics.ObserveResponse("response", resp.Payload)

	return abi.EncodeResponse(resp), nil
}

func (h *Handler) fail(log *zap.Logger, stage Stage, requestID *big.Int, err error) []byte {
	kind := domain.KindOf(err)
	resp := domain.Response{
		Type:      domain.ResponseType(h.cfg.ErrorTag),
		RequestID: requestID,
		Payload:   kind.Code(),
	}
	log.Warn("error",
		zap.Stringer("stage", stage),
		zap.Stringer("kind", kind),
		zap.Uint64("type", uint64(resp.Type)),
		zap.String("request_id", requestID.String()),
		zap.Uint64("code", resp.Payload),
		zap.Error(err))
	h.metrics.ObserveResponse("error", resp.Payload)

	return abi.EncodeResponse(resp)
}
