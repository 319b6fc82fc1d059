// Package handler exposes the leads API over gin.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/platform/httpkit"
	"leadboard_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterPublic mounts the read-only routes.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/check-duplicate", h.CheckDuplicate)
	rg.GET("/teams", h.Teams)
	rg.GET("/preferences/sort", h.SortPreference)
	rg.GET("/stats/summary", h.Summary)
	rg.GET("/stats/top", h.Top)
	rg.GET("/stats/peak-hours", h.PeakHours)
	rg.GET("/stats/daily", h.Daily)
	rg.GET("/stats/teams", h.TeamStats)
	rg.GET("/:uid", h.GetByUID)
}

// RegisterProtected mounts the mutating routes behind admin auth.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.POST("/refresh", h.Refresh)
	rg.PUT("/preferences/sort", h.SetSortPreference)
	rg.POST("/:uid/analyze", h.Analyze)
	rg.PUT("/:uid", h.Update)
	rg.DELETE("/:uid", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) GetByUID(c *gin.Context) {
	resp, err := h.svc.GetByUID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) CheckDuplicate(c *gin.Context) {
	phoneNumber := strings.TrimSpace(c.Query("phone"))
	if phoneNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, "phone query parameter is required", nil)
		return
	}

	resp, err := h.svc.CheckDuplicate(c.Request.Context(), phoneNumber)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicatePhone) {
			httpkit.Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Analyze(c *gin.Context) {
	resp, err := h.svc.Analyze(c.Request.Context(), c.Param("uid"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeadNotFound):
			httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, service.ErrAnalysisDisabled):
			httpkit.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
		default:
			httpkit.HandleError(c, err)
		}
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Teams(c *gin.Context) {
	resp, err := h.svc.Teams(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Refresh(c *gin.Context) {
	resp, err := h.svc.Refresh(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SortPreference(c *gin.Context) {
	resp, err := h.svc.SortPreference(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) SetSortPreference(c *gin.Context) {
	var req transport.SortPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	resp, err := h.svc.SetSortPreference(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// Stats handlers

func (h *Handler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Top(c *gin.Context) {
	resp, err := h.svc.Top(c.Request.Context(), c.DefaultQuery("dimension", "place"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) PeakHours(c *gin.Context) {
	width, _ := strconv.Atoi(c.DefaultQuery("width", "1"))
	resp, err := h.svc.PeakHours(c.Request.Context(), width)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Daily(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	resp, err := h.svc.Daily(c.Request.Context(), days)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

func (h *Handler) TeamStats(c *gin.Context) {
	resp, err := h.svc.TeamStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
