package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"climatlas/core"
	"climatlas/internal/contract"
	"climatlas/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// parseMetric validates a metric key from a request argument.
func parseMetric(s string) (schema.Metric, error) {
	m := schema.Metric(s)
	if _, ok := schema.ValidMetrics[m]; !ok {
		return "", fmt.Errorf("invalid metric '%s'", s)
	}
	return m, nil
}

// parseMode validates a display mode from a request argument.
func parseMode(s string) (schema.DisplayMode, error) {
	m := schema.DisplayMode(s)
	if _, ok := schema.ValidDisplayModes[m]; !ok {
		return "", fmt.Errorf("invalid mode '%s'. must be value, delta or slope", s)
	}
	return m, nil
}

// applyBrush parses a "START:END" window string into the config.
func applyBrush(cfg *contract.Config, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid brush '%s'. expected START:END, e.g. 2000:2023", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("invalid brush start '%s'", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("invalid brush end '%s'", parts[1])
	}
	if start > end {
		return fmt.Errorf("brush start %d cannot be after brush end %d", start, end)
	}
	cfg.BrushStart = start
	cfg.BrushEnd = end
	return nil
}

func (h *toolHandler) handleRankCountries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("metric", ""); s != "" {
		m, err := parseMetric(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Metric = m
	}
	if s := request.GetString("mode", ""); s != "" {
		m, err := parseMode(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Mode = m
	}
	if y := request.GetInt("year", 0); y > 0 {
		cfg.Year = y
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	if err := applyBrush(cfg, request.GetString("brush", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := core.GetMapResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrend(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("metric", ""); s != "" {
		m, err := parseMetric(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Metric = m
	}
	if err := applyBrush(cfg, request.GetString("brush", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := core.GetTrendResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("x", ""); s != "" {
		m, err := parseMetric(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.XMetric = m
	} else {
		cfg.XMetric = ""
	}
	if s := request.GetString("y", ""); s != "" {
		m, err := parseMetric(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.YMetric = m
	} else {
		cfg.YMetric = ""
	}
	if s := request.GetString("mode", ""); s != "" {
		m, err := parseMode(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cfg.Mode = m
	}
	if err := applyBrush(cfg, request.GetString("brush", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := core.GetCompareResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCountryFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	iso3 := request.GetString("country", "")
	if y := request.GetInt("year", 0); y > 0 {
		cfg.Year = y
	}
	if err := applyBrush(cfg, request.GetString("brush", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := core.GetFocusResult(cfg, iso3)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("focus lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckCoverage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyBrush(cfg, request.GetString("brush", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := core.GetCheckResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("coverage check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
