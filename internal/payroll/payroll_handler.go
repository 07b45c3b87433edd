package payroll

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hr-admin/internal/shared/apperror"
	"hr-admin/internal/shared/response"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// releaseIdempotencyLock frees the in-flight lock set by the idempotency
// middleware; cacheIdempotentResponse stores the final payload so retries
// with the same key replay it instead of regenerating payroll.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lk, ok := c.Get("idempotency_lock_key"); ok {
		if key, ok := lk.(string); ok && key != "" {
			h.rdb.Del(c.Request.Context(), key)
		}
	}
}

func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp interface{}) {
	if h.rdb == nil {
		return
	}
	if ck, ok := c.Get("idempotency_cache_key"); ok {
		if key, ok := ck.(string); ok && key != "" {
			if payload, err := json.Marshal(resp); err == nil {
				_ = h.rdb.Set(c.Request.Context(), key, payload, idempotencyCacheTTL).Err()
			}
		}
	}
}

func (h *Handler) Generate(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GenerateBatch(c *gin.Context) {
	defer h.releaseIdempotencyLock(c)

	var req GenerateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GenerateBatch(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	var req RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	if start > len(resp) {
		start = len(resp)
	}
	end := start + pageSize
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkAsPaid(c *gin.Context) {
	resp, err := h.service.MarkAsPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
