package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"meesho-recon/internal/aggregate"
	"meesho-recon/internal/domain"
	"meesho-recon/internal/middleware"
	"meesho-recon/internal/service"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/response"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// CreateSKUGroupRequest takes either Rule ("kw1, kw2 => Name") or Name with
// Keywords.
type CreateSKUGroupRequest struct {
	Rule     string   `json:"rule" binding:"required_without=Name"`
	Name     string   `json:"name" binding:"required_without=Rule"`
	Keywords []string `json:"keywords" binding:"required_with=Name"`
}

type FilterRequest struct {
	DateField    string   `json:"date_field" binding:"omitempty,oneof=order_date dispatch_date payment_date"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Statuses     []string `json:"statuses"`
	IncludeBlank bool     `json:"include_blank"`
	SKUs         []string `json:"skus"`
	Sizes        []string `json:"sizes"`
	States       []string `json:"states"`
	CatalogIDs   []string `json:"catalog_ids"`
	ActiveGroups []string `json:"active_groups"`
}

type StyleRulesRequest struct {
	Rules string `json:"rules"`
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseStatus(raw string) (domain.Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.StatusBlank, nil
	}
	for _, s := range domain.NamedStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

func (r FilterRequest) toFilter() (aggregate.Filter, error) {
	from, err := parseDate(r.From)
	if err != nil {
		return aggregate.Filter{}, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := parseDate(r.To)
	if err != nil {
		return aggregate.Filter{}, fmt.Errorf("invalid to date: %w", err)
	}

	statuses := make([]domain.Status, 0, len(r.Statuses))
	for _, raw := range r.Statuses {
		s, err := parseStatus(raw)
		if err != nil {
			return aggregate.Filter{}, err
		}
		statuses = append(statuses, s)
	}

	return aggregate.Filter{
		DateField:    domain.Field(r.DateField),
		From:         from,
		To:           to,
		Statuses:     statuses,
		IncludeBlank: r.IncludeBlank,
		SKUs:         r.SKUs,
		Sizes:        r.Sizes,
		States:       r.States,
		CatalogIDs:   r.CatalogIDs,
		ActiveGroups: r.ActiveGroups,
	}, nil
}

// CreateSKUGroup godoc
// @Summary Create a SKU group
// @Description Snapshot every uploaded SKU containing any keyword (case-insensitive) into a named group. Send either "rule" as "kw1, kw2 => Name" or "name" with "keywords". A group joins the SKU filter only once the filter lists it in active_groups.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body CreateSKUGroupRequest true "SKU group"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/sku-groups [post]
func (h *AnalyticsHandler) CreateSKUGroup(c *gin.Context) {
	var req CreateSKUGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	name, keywords := req.Name, req.Keywords
	if req.Rule != "" {
		var err error
		if name, keywords, err = aggregate.ParseSKUGroupRule(req.Rule); err != nil {
			response.BadRequest(c, "Invalid SKU group", err.Error())
			return
		}
	}

	group, err := h.service.AddSKUGroup(middleware.CurrentSession(c), name, keywords)
	if err != nil {
		response.BadRequest(c, "Invalid SKU group", err.Error())
		return
	}

	var warnings []string
	if len(group.SKUs) == 0 {
		warnings = append(warnings, fmt.Sprintf("no uploaded SKU contains any of %q", group.Keywords))
	}
	response.SuccessWithWarnings(c, http.StatusCreated, "SKU group created successfully", group, warnings)
}

// DeleteSKUGroup godoc
// @Summary Delete a SKU group
// @Description Remove one SKU group and drop it from the active filter
// @Tags filters
// @Produce json
// @Param name path string true "Group name"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/sku-groups/{name} [delete]
func (h *AnalyticsHandler) DeleteSKUGroup(c *gin.Context) {
	if err := h.service.DeleteSKUGroup(middleware.CurrentSession(c), c.Param("name")); err != nil {
		respondError(c, "Failed to delete SKU group", err)
		return
	}
	response.Success(c, http.StatusOK, "SKU group deleted successfully", nil)
}

// ClearSKUGroups godoc
// @Summary Clear SKU groups
// @Description Remove every SKU group of the current session
// @Tags filters
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/sku-groups [delete]
func (h *AnalyticsHandler) ClearSKUGroups(c *gin.Context) {
	h.service.ClearSKUGroups(middleware.CurrentSession(c))
	response.Success(c, http.StatusOK, "SKU groups cleared successfully", nil)
}

// SetFilter godoc
// @Summary Set the order filter
// @Description Replace the filter applied to every order summary and pivot. Criteria combine with AND; dates are inclusive YYYY-MM-DD.
// @Tags filters
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Filter"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/filters [put]
func (h *AnalyticsHandler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	f, err := req.toFilter()
	if err != nil {
		response.BadRequest(c, "Invalid filter", err.Error())
		return
	}

	sess := middleware.CurrentSession(c)
	if err := h.service.SetFilter(sess, f); err != nil {
		response.BadRequest(c, "Invalid filter", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Filter updated successfully", sess.Filter())
}

// SetStyleRules godoc
// @Summary Set style grouping rules
// @Description Replace the session's style rules. One rule per line, written as "kw1, kw2 => Group Name".
// @Tags filters
// @Accept json
// @Produce json
// @Param request body StyleRulesRequest true "Style rules"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/style-rules [put]
func (h *AnalyticsHandler) SetStyleRules(c *gin.Context) {
	var req StyleRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	rules, err := h.service.SetStyleRules(middleware.CurrentSession(c), req.Rules)
	if err != nil {
		response.BadRequest(c, "Invalid style rules", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Style rules updated successfully", rules)
}

// GetOrders godoc
// @Summary Get filtered orders
// @Description Return the uploaded orders table after the session filter
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/analytics/orders [get]
func (h *AnalyticsHandler) GetOrders(c *gin.Context) {
	table, err := h.service.FilteredOrders(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "Failed to filter orders", err)
		return
	}
	response.Success(c, http.StatusOK, "Orders retrieved successfully", table)
}

// GetStatusSummary godoc
// @Summary Get the status summary
// @Description Count rows and sum settlement per status bucket of the filtered orders
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/analytics/status-summary [get]
func (h *AnalyticsHandler) GetStatusSummary(c *gin.Context) {
	result, err := h.service.StatusSummary(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "Failed to build status summary", err)
		return
	}

	warnings := make([]string, 0, len(result.Missing))
	for _, f := range result.Missing {
		warnings = append(warnings, fmt.Sprintf("column for %s not found", f))
	}
	response.SuccessWithWarnings(c, http.StatusOK, "Status summary retrieved successfully", result, warnings)
}

// GetAmountSummary godoc
// @Summary Get the amount summary
// @Description Evaluate total amount, profit, losses, RTO and ads figures over the filtered orders
// @Tags analytics
// @Produce json
// @Param per_unit_cost query number false "Cost of goods per delivered unit"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/analytics/amount-summary [get]
func (h *AnalyticsHandler) GetAmountSummary(c *gin.Context) {
	var perUnitCost *decimal.Decimal
	if raw := c.Query("per_unit_cost"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			response.BadRequest(c, "Invalid per_unit_cost", "Use a non-negative number")
			return
		}
		perUnitCost = &d
	}

	result, err := h.service.AmountSummary(middleware.CurrentSession(c), perUnitCost)
	if err != nil {
		respondError(c, "Failed to build amount summary", err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, "Amount summary retrieved successfully", result, result.Warnings)
}

func splitFields(raw string) []domain.Field {
	fields := make([]domain.Field, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, domain.Field(part))
		}
	}
	return fields
}

// GetPivot godoc
// @Summary Build a pivot table
// @Description Pivot the filtered orders by semantic fields. Without a value field cells count rows; otherwise they sum it. Status uses the classified bucket.
// @Tags analytics
// @Produce json
// @Param rows query string true "Comma-separated row fields, e.g. sku,size"
// @Param cols query string false "Column field, e.g. status"
// @Param value query string false "Value field to sum, e.g. settlement_amount"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/analytics/pivot [get]
func (h *AnalyticsHandler) GetPivot(c *gin.Context) {
	spec := aggregate.FieldPivotSpec{
		Rows:   splitFields(c.Query("rows")),
		Column: domain.Field(strings.TrimSpace(c.Query("cols"))),
		Value:  domain.Field(strings.TrimSpace(c.Query("value"))),
	}
	if len(spec.Rows) == 0 {
		response.BadRequest(c, "Invalid pivot", "At least one row field is required")
		return
	}

	table, err := h.service.Pivot(middleware.CurrentSession(c), spec)
	if err != nil {
		respondError(c, "Failed to build pivot", err)
		return
	}
	response.Success(c, http.StatusOK, "Pivot built successfully", table)
}

// GetStylePivot godoc
// @Summary Build the style pivot
// @Description Group SKUs into styles and pivot Style x Size x Color
// @Tags analytics
// @Produce json
// @Param set query string false "File set" Enums(orders, returns) default(orders)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/analytics/style-pivot [get]
func (h *AnalyticsHandler) GetStylePivot(c *gin.Context) {
	set, err := session.ParseFileSet(c.DefaultQuery("set", string(session.SetOrders)))
	if err != nil || (set != session.SetOrders && set != session.SetReturns) {
		response.BadRequest(c, "Invalid file set", "Use orders or returns")
		return
	}

	table, err := h.service.StylePivot(middleware.CurrentSession(c), set)
	if err != nil {
		respondError(c, "Failed to build style pivot", err)
		return
	}
	response.Success(c, http.StatusOK, "Style pivot built successfully", table)
}

// GetCourierPivot godoc
// @Summary Build the courier summary
// @Description Count filtered orders per dispatch date and normalized courier
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/analytics/courier-pivot [get]
func (h *AnalyticsHandler) GetCourierPivot(c *gin.Context) {
	table, err := h.service.CourierPivot(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "Failed to build courier summary", err)
		return
	}
	response.Success(c, http.StatusOK, "Courier summary built successfully", table)
}

// GetPaymentPivot godoc
// @Summary Build the upcoming payments table
// @Description Sum settlement of the filtered orders per payment date and status
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/analytics/payment-pivot [get]
func (h *AnalyticsHandler) GetPaymentPivot(c *gin.Context) {
	table, err := h.service.PaymentPivot(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "Failed to build payment table", err)
		return
	}
	response.Success(c, http.StatusOK, "Payment table built successfully", table)
}

// GetReturnReasons godoc
// @Summary Build the return-reason pivot
// @Description Sum returned quantity per SKU and reason of the uploaded returns files
// @Tags analytics
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/analytics/return-reasons [get]
func (h *AnalyticsHandler) GetReturnReasons(c *gin.Context) {
	table, err := h.service.ReturnReasonPivot(middleware.CurrentSession(c))
	if err != nil {
		respondError(c, "Failed to build return-reason pivot", err)
		return
	}
	response.Success(c, http.StatusOK, "Return-reason pivot built successfully", table)
}
