package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"relife/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	winnerStyle = cellStyle.Foreground(lipgloss.Color("#04B575"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#874BFD"))).
		Headers(headers...)
}

// renderRankings draws the final standings of one game.
func renderRankings(res domain.GameResult) string {
	t := newTable("#", "Player", "Money", "Stats", "Job", "Achievements", "Total")
	for _, r := range res.Rankings {
		names := make([]string, 0, len(r.Achievements))
		for _, a := range r.Achievements {
			names = append(names, a.Name)
		}
		t.Row(
			fmt.Sprint(r.Rank),
			r.Player.Name,
			fmt.Sprint(r.Score.Money),
			fmt.Sprint(r.Score.Stats),
			fmt.Sprint(r.Score.JobBonus),
			fmt.Sprintf("%d %s", r.Score.Achievements, strings.Join(names, ", ")),
			fmt.Sprint(r.Score.Total),
		)
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == 0:
			return winnerStyle
		}
		return cellStyle
	}).Render()
}

func sortStandings(list []standing) {
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].Wins != list[b].Wins {
			return list[a].Wins > list[b].Wins
		}
		return list[a].Total > list[b].Total
	})
}

// renderSummary draws the aggregate table of a multi-game run.
func renderSummary(list []standing) string {
	t := newTable("Player", "Games", "Wins", "Win %", "Avg score")
	for _, s := range list {
		rate, avg := 0.0, 0
		if s.Games > 0 {
			rate = 100 * float64(s.Wins) / float64(s.Games)
			avg = s.Total / s.Games
		}
		t.Row(s.Name, fmt.Sprint(s.Games), fmt.Sprint(s.Wins), fmt.Sprintf("%.1f", rate), fmt.Sprint(avg))
	}
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	}).Render()
}

// renderState draws a snapshot summary: the game header and one row per player.
func renderState(st *domain.GameState, tables *domain.Tables) string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Turn %d/%d, %s phase", st.Turn, st.MaxTurns, st.Phase)))

	info := []string{fmt.Sprintf("deck %d, discard %d", len(st.Deck), len(st.DiscardPile))}
	if st.CurrentEvent != nil {
		info = append(info, "event: "+st.CurrentEvent.Name)
	}
	if p := pendingSummary(st); p != "" {
		info = append(info, "pending: "+p)
	}
	fmt.Fprintln(&b, infoStyle.Render(strings.Join(info, " | ")))

	t := newTable("", "Player", "Character", "Money", "INT/STA/CHA", "Job", "Perf", "Hand")
	for i, p := range st.Players {
		marker := ""
		if i == st.CurrentPlayerIndex && st.Phase == domain.PhaseAction {
			marker = ">"
		}
		name := p.Name
		if p.IsAI {
			name += " (bot)"
		}
		if p.IsSkipTurn {
			name += " [skip]"
		}
		t.Row(
			marker,
			name,
			characterName(tables, p.CharacterID),
			fmt.Sprint(p.Money),
			fmt.Sprintf("%d/%d/%d", p.Stats.Intelligence, p.Stats.Stamina, p.Stats.Charisma),
			jobName(tables, p),
			fmt.Sprint(p.Performance),
			fmt.Sprint(len(p.Hand)),
		)
	}
	b.WriteString(t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		return cellStyle
	}).Render())

	if n := len(st.EventLog); n > 0 {
		fmt.Fprintf(&b, "\n%s", infoStyle.Render("last: "+st.EventLog[n-1]))
	}
	return b.String()
}

func pendingSummary(st *domain.GameState) string {
	var parts []string
	if st.PendingStatChoice != nil {
		parts = append(parts, "stat choice")
	}
	if st.PendingExplore != nil {
		parts = append(parts, "explore")
	}
	if st.PendingTarget != nil {
		parts = append(parts, "target")
	}
	if st.PendingParachute != nil {
		parts = append(parts, "parachute")
	}
	if st.PendingFunction != nil {
		parts = append(parts, fmt.Sprintf("reaction chain %d", len(st.PendingFunction.Chain)))
	}
	if n := len(st.PendingDiscards); n > 0 {
		parts = append(parts, fmt.Sprintf("%d discard(s)", n))
	}
	return strings.Join(parts, ", ")
}

func characterName(tables *domain.Tables, id string) string {
	if tables != nil {
		if ch, ok := tables.Character(id); ok {
			return ch.Name
		}
	}
	return id
}

func jobName(tables *domain.Tables, p domain.Player) string {
	if !p.Employed() {
		return "-"
	}
	if tables != nil {
		if job, ok := tables.Job(p.JobID); ok && p.JobLevel < len(job.Levels) {
			return fmt.Sprintf("%s (%s)", job.Name, job.Levels[p.JobLevel].Name)
		}
	}
	return fmt.Sprintf("%s L%d", p.JobID, p.JobLevel)
}
