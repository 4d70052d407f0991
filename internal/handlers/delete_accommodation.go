package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"accommodations/internal/accommodation"
	"accommodations/internal/identity"
	"accommodations/internal/logging"
	"accommodations/internal/notify"

	"github.com/aws/aws-lambda-go/events"
)

const (
	deletedMessage     = "Accommodation deleted successfully"
	invalidBodyMessage = "Invalid request body."
)

type Notifier interface {
	AccommodationDeleted(ctx context.Context, d notify.Deletion) (string, error)
}

type DeleteAccommodationRequest struct {
	ID accommodation.ID `json:"id"`
}

type DeleteAccommodationResponse struct {
	Message string `json:"message"`
}

// DeleteAccommodationHandler serves DELETE /accommodation. It is built once
// per cold start and shared by all invocations.
type DeleteAccommodationHandler struct {
	collab   accommodation.Collaborators
	notifier Notifier
	log      *slog.Logger
}

func NewDeleteAccommodationHandler(collab accommodation.Collaborators, notifier Notifier, log *slog.Logger) *DeleteAccommodationHandler {
	if log == nil {
		log = logging.Discard()
	}
	return &DeleteAccommodationHandler{
		collab:   collab,
		notifier: notifier,
		log:      log,
	}
}

// Handle answers 200 with a JSON message on success and 400 with the error
// text as a plain body on any failure.
func (h *DeleteAccommodationHandler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	token := identity.BearerToken(header(req.Headers, "Authorization"))

	raw, err := requestBody(req)
	if err != nil {
		h.log.WarnContext(ctx, "undecodable request body", "error", err)
		return textResp(http.StatusBadRequest, invalidBodyMessage)
	}
	var in DeleteAccommodationRequest
	if err := json.Unmarshal(raw, &in); err != nil {
		h.log.WarnContext(ctx, "invalid request body", "error", err)
		return textResp(http.StatusBadRequest, invalidBodyMessage)
	}

	log := h.log.With("accommodation_id", in.ID.String())

	w, err := accommodation.NewWorkflow(ctx, in.ID, token, h.collab)
	if err != nil {
		return h.fail(ctx, log, err)
	}
	if err := w.Delete(ctx); err != nil {
		return h.fail(ctx, log, err)
	}

	log.InfoContext(ctx, "accommodation deleted", "owner", w.OwnerID().String(), "images", len(w.Images()))
	h.announce(ctx, log, w)

	return jsonResp(http.StatusOK, DeleteAccommodationResponse{Message: deletedMessage})
}

func (h *DeleteAccommodationHandler) fail(ctx context.Context, log *slog.Logger, err error) (events.APIGatewayV2HTTPResponse, error) {
	var (
		nf *accommodation.NotFoundError
		ue *accommodation.UnauthorizedError
		of *accommodation.OperationFailure
	)
	switch {
	case errors.As(err, &nf):
		log.InfoContext(ctx, "accommodation not found", "cause", errString(nf.Cause))
	case errors.As(err, &ue):
		log.WarnContext(ctx, "delete not authorized", "caller", ue.Caller, "cause", errString(ue.Cause))
	case errors.As(err, &of):
		log.ErrorContext(ctx, "delete failed", "stage", string(of.Stage), "error", of.Err)
	default:
		log.ErrorContext(ctx, "delete failed", "error", err)
	}
	return textResp(http.StatusBadRequest, err.Error())
}

// announce is best effort; the record is already gone.
func (h *DeleteAccommodationHandler) announce(ctx context.Context, log *slog.Logger, w *accommodation.Workflow) {
	if h.notifier == nil {
		return
	}
	msgID, err := h.notifier.AccommodationDeleted(ctx, notify.Deletion{
		ID:      w.ID().String(),
		OwnerID: w.OwnerID().String(),
		Images:  w.Images(),
	})
	if err != nil {
		log.WarnContext(ctx, "deletion notification failed", "error", err)
		return
	}
	if msgID != "" {
		log.DebugContext(ctx, "deletion notification sent", "message_id", msgID)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
