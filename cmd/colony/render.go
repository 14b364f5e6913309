package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/models"
)

func printLogs(w io.Writer, logs []models.LogEntry) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "📭 Nothing happened")
		return
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"ID", "Type", "Message", "Details"}),
	)
	for _, entry := range logs {
		row := []string{
			entry.ID,
			logTypeColor(entry.Type).Sprint(entry.Type),
			entry.Key,
			formatParams(entry.Params),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func printState(w io.Writer, state *models.GameState) {
	infoColor := color.New(color.FgYellow)

	infoColor.Fprintln(w, "📊 Resources:")
	for _, rt := range models.AllResourceTypes() {
		fmt.Fprintf(w, "   %-8s %12.0f\n", rt, state.Resources[rt])
	}

	infoColor.Fprintln(w, "🏗  Buildings:")
	for _, bt := range slices.Sorted(maps.Keys(state.Buildings)) {
		b := state.Buildings[bt]
		damaged := ""
		if b.IsDamaged {
			damaged = " (damaged)"
		}
		fmt.Fprintf(w, "   • %s: %d%s\n", formatName(string(bt)), b.Level, damaged)
	}

	infoColor.Fprintln(w, "🪖 Units:")
	for _, ut := range slices.Sorted(maps.Keys(state.Units)) {
		fmt.Fprintf(w, "   • %s: %d\n", formatName(string(ut)), state.Units[ut])
	}

	fmt.Fprintf(w, "   Queued: %d constructions, %d recruitments, %d missions",
		len(state.ActiveConstructions), len(state.ActiveRecruitments), len(state.ActiveMissions))
	if state.ActiveResearch != nil {
		fmt.Fprintf(w, ", researching %s", state.ActiveResearch.TechID)
	}
	fmt.Fprintf(w, "\n   Campaign level %d\n", state.CampaignProgress)
}

func printScore(w io.Writer, score engine.ScoreBreakdown) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Source", "Points"}),
	)
	rows := [][]string{
		{"Buildings", fmt.Sprintf("%.0f", score.Buildings)},
		{"Garrison", fmt.Sprintf("%.0f", score.Garrison)},
		{"Deployed", fmt.Sprintf("%.0f", score.Deployed)},
		{"Research", fmt.Sprintf("%.0f", score.Research)},
		{"Bank", fmt.Sprintf("%.0f", score.Bank)},
		{"Total", fmt.Sprintf("%.0f", score.Total())},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
}

func logTypeColor(t models.LogType) *color.Color {
	switch t {
	case models.LogCombat:
		return color.New(color.FgRed)
	case models.LogDanger:
		return color.New(color.FgRed, color.Bold)
	case models.LogSuccess:
		return color.New(color.FgGreen)
	case models.LogMission:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgWhite)
	}
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, 0, len(params))
	for _, k := range slices.Sorted(maps.Keys(params)) {
		if k == "combatResult" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(parts, " ")
}

// formatName turns OIL_RIG into Oil Rig
func formatName(name string) string {
	words := strings.Split(strings.ToLower(name), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
