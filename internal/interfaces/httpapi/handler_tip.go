package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
	"github.com/riskibarqy/footy-tipping/internal/usecase"
)

type processTipsRequest struct {
	UserName string            `json:"user_name" validate:"required,max=100"`
	Password string            `json:"password" validate:"required"`
	Tips     map[string]string `json:"tips" validate:"required,min=1"`
	Margin   string            `json:"margin" validate:"omitempty,max=10"`
	Round    string            `json:"round" validate:"omitempty,max=50"`
}

type decryptTipsRequest struct {
	EncryptedString string `json:"encrypted_string" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type saveTipRequest struct {
	UserName      string `json:"user_name" validate:"required,max=100"`
	EncryptedData string `json:"encrypted_data" validate:"required"`
}

type tipDataDTO struct {
	UserName  string            `json:"user_name"`
	Tips      map[string]string `json:"tips"`
	Margin    string            `json:"margin"`
	Round     string            `json:"round"`
	CreatedAt string            `json:"created_at"`
}

type processTipsResponse struct {
	TipData tipDataDTO `json:"tip_data"`
}

type decryptTipsResponse struct {
	EncryptedString string `json:"encrypted_string"`
	Password        string `json:"password"`
}

type tipDTO struct {
	ID            string    `json:"id"`
	UserName      string    `json:"user_name"`
	EncryptedData string    `json:"encrypted_data"`
	CreatedAt     time.Time `json:"created_at"`
}

type tipListDTO struct {
	Tips []tipDTO `json:"tips"`
}

func (h *Handler) ProcessTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcessTips")
	defer span.End()

	var req processTipsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	submission, err := h.tipService.Process(ctx, usecase.ProcessTipsInput{
		UserName: req.UserName,
		Password: req.Password,
		Tips:     req.Tips,
		Margin:   req.Margin,
		Round:    req.Round,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, processTipsResponse{TipData: submissionToDTO(submission)})
}

func (h *Handler) DecryptTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DecryptTips")
	defer span.End()

	var req decryptTipsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.tipService.Decrypt(ctx, usecase.DecryptTipsInput{
		EncryptedString: req.EncryptedString,
		Password:        req.Password,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, decryptTipsResponse{
		EncryptedString: result.EncryptedString,
		Password:        result.Password,
	})
}

func (h *Handler) SaveTip(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTip")
	defer span.End()

	var req saveTipRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tipService.Save(ctx, usecase.SaveTipInput{
		UserName:      req.UserName,
		EncryptedData: req.EncryptedData,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save tip failed", "user_name", req.UserName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tipToDTO(item))
}

func (h *Handler) ListTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTips")
	defer span.End()

	userName := strings.TrimSpace(r.URL.Query().Get("user_name"))
	items, err := h.tipService.ListByUser(ctx, userName)
	if err != nil {
		h.logger.WarnContext(ctx, "list tips failed", "user_name", userName, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tipDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tipToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, tipListDTO{Tips: out})
}

func submissionToDTO(item tip.Submission) tipDataDTO {
	return tipDataDTO{
		UserName:  item.UserName,
		Tips:      item.Tips,
		Margin:    item.Margin,
		Round:     item.Round,
		CreatedAt: item.CreatedAt,
	}
}

func tipToDTO(item tip.Tip) tipDTO {
	return tipDTO{
		ID:            item.ID,
		UserName:      item.UserName,
		EncryptedData: item.EncryptedData,
		CreatedAt:     item.CreatedAt,
	}
}
