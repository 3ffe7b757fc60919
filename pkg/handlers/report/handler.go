package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rewindio/aws-eb-update-notifier/pkg/adapters"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/beanstalk"
	"github.com/rewindio/aws-eb-update-notifier/pkg/services/scan"
	"github.com/rs/zerolog"
)

type Handler struct {
	controller scan.Controller
}

func NewHandler(controller scan.Controller) *Handler {
	return &Handler{controller: controller}
}

// GetReport runs a scan and returns the outdated set as JSON. The controller
// behind this handler carries no notifier, so requesting a report never posts
// to the channel.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	result, err := h.controller.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("scan failed")

		status := http.StatusInternalServerError
		if errors.Is(err, beanstalk.ErrInventoryUnavailable) ||
			errors.Is(err, beanstalk.ErrCatalogUnavailable) {
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapScanResultDomainToApi(*result)); err != nil {
		logger.Error().Err(err).Msg("failed to encode scan report")
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
