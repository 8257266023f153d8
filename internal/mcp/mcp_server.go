// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"climatlas/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Climatlas MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Climatlas Indicator Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: rank_countries ---
	s.AddTool(mcp.NewTool("rank_countries",
		mcp.WithDescription("Rank countries by a derived indicator value (latest value, delta or slope over the brush window)."),
		mcp.WithString("metric", mcp.Description("Indicator key (co2_pc, energy_pc, water_basic_pct, sanitation_pct, gdp_pc, temp_anom). Defaults to the configured metric."), mcp.Enum("co2_pc", "energy_pc", "water_basic_pct", "sanitation_pct", "gdp_pc", "temp_anom")),
		mcp.WithString("mode", mcp.Description("Derivation mode (value, delta, slope). Defaults to 'value'."), mcp.Enum("value", "delta", "slope")),
		mcp.WithNumber("year", mcp.Description("Focus year for value mode (defaults to the latest year in the dataset).")),
		mcp.WithString("brush", mcp.Description("Year window as START:END, e.g. '2000:2023'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankCountries)

	// --- 2. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		mcp.WithDescription("Get the cross-country mean of an indicator per year, with delta and slope over the brush window."),
		mcp.WithString("metric", mcp.Description("Indicator key."), mcp.Enum("co2_pc", "energy_pc", "water_basic_pct", "sanitation_pct", "gdp_pc", "temp_anom")),
		mcp.WithString("brush", mcp.Description("Year window as START:END.")),
	), h.handleGetTrend)

	// --- 3. Tool: compare_metrics ---
	s.AddTool(mcp.NewTool("compare_metrics",
		mcp.WithDescription("Compare two indicators across countries, one point per country."),
		mcp.WithString("x", mcp.Description("Indicator key for the x axis."), mcp.Required()),
		mcp.WithString("y", mcp.Description("Indicator key for the y axis."), mcp.Required()),
		mcp.WithString("mode", mcp.Description("Derivation mode (delta, slope). Value mode upgrades to slope inside the compare lab."), mcp.Enum("value", "delta", "slope")),
		mcp.WithString("brush", mcp.Description("Year window as START:END.")),
	), h.handleCompareMetrics)

	// --- 4. Tool: get_country_focus ---
	s.AddTool(mcp.NewTool("get_country_focus",
		mcp.WithDescription("Get all indicators for a single country: focus-year value, delta and slope over the brush window."),
		mcp.WithString("country", mcp.Description("Three-letter ISO3 country code, e.g. 'USA'."), mcp.Required()),
		mcp.WithNumber("year", mcp.Description("Focus year (defaults to the latest year in the dataset).")),
		mcp.WithString("brush", mcp.Description("Year window as START:END.")),
	), h.handleGetCountryFocus)

	// --- 5. Tool: check_coverage ---
	s.AddTool(mcp.NewTool("check_coverage",
		mcp.WithDescription("Report the share of countries with data per indicator inside the brush window, against configured thresholds."),
		mcp.WithString("brush", mcp.Description("Year window as START:END.")),
	), h.handleCheckCoverage)

	return s
}

// StartMCPServer starts the Climatlas MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
