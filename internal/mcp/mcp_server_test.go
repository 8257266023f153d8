package mcp_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"climatlas/internal/contract"
	mcp_internal "climatlas/internal/mcp"
	"climatlas/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coreFixture = `iso3,country,year,co2_pc,energy_pc,water_basic_pct,sanitation_pct,gdp_pc,temp_anom
USA,United States,2000,20.1,,99.0,99.8,36330,
USA,United States,2023,14.9,,99.1,99.8,81695,
BRA,Brazil,2000,1.85,,92.0,75.0,3749,
BRA,Brazil,2023,2.21,,93.5,83.0,10044,
`

// writeFixture returns a data dir holding a minimal core table.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core_merged.csv"), []byte(coreFixture), 0o644))
	return dir
}

func baseConfig(dataDir string) *contract.Config {
	return &contract.Config{
		DataDir:     dataDir,
		Metric:      schema.MetricCO2,
		Mode:        schema.ValueMode,
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      schema.JSONOut,
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := baseConfig(writeFixture(t))

	// A dummy manager is enough: none of these handlers touch the store
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("compare_metrics missing x", func(t *testing.T) {
		tool := s.GetTool("compare_metrics")
		require.NotNil(t, tool, "Tool compare_metrics should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_metrics",
				Arguments: map[string]any{
					"y": "gdp_pc", // Missing x
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "requires both x and y metrics")
	})

	t.Run("rank_countries malformed brush", func(t *testing.T) {
		tool := s.GetTool("rank_countries")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "rank_countries",
				Arguments: map[string]any{
					"brush": "2000-2023", // Wrong separator
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "expected START:END")
	})

	t.Run("rank_countries unknown metric", func(t *testing.T) {
		tool := s.GetTool("rank_countries")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "rank_countries",
				Arguments: map[string]any{
					"metric": "population", // Not an indicator key
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "a typo'd metric must not fall back to the default ranking")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid metric 'population'")
	})

	t.Run("rank_countries unknown mode", func(t *testing.T) {
		tool := s.GetTool("rank_countries")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "rank_countries",
				Arguments: map[string]any{
					"mode": "trend",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid mode 'trend'")
	})

	t.Run("compare_metrics unknown axis metric", func(t *testing.T) {
		tool := s.GetTool("compare_metrics")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "compare_metrics",
				Arguments: map[string]any{
					"x": "gdp",
					"y": "co2_pc",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid metric 'gdp'")
	})

	t.Run("get_country_focus unknown code", func(t *testing.T) {
		tool := s.GetTool("get_country_focus")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_country_focus",
				Arguments: map[string]any{
					"country": "ZZZ",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "focus lookup failed")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	baseCfg := baseConfig(writeFixture(t))
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("rank_countries returns ranked rows", func(t *testing.T) {
		tool := s.GetTool("rank_countries")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "rank_countries",
				Arguments: map[string]any{
					"metric": "co2_pc",
					"mode":   "value",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"iso3": "USA"`)
		assert.Contains(t, text, `"value": 14.9`)
	})

	t.Run("get_trend honors brush", func(t *testing.T) {
		tool := s.GetTool("get_trend")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_trend",
				Arguments: map[string]any{
					"metric": "gdp_pc",
					"brush":  "2000:2023",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"brush_start": 2000`)
		assert.Contains(t, text, `"brush_delta"`)
	})

	t.Run("check_coverage reports all metrics", func(t *testing.T) {
		tool := s.GetTool("check_coverage")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "check_coverage",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"co2_pc"`)
		assert.Contains(t, text, `"energy_pc"`)
	})
}
