package core

import "time"

const (
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneCurrent   MilestoneStatus = "current"
	MilestoneUpcoming  MilestoneStatus = "upcoming"
)

type (
	MilestoneStatus string

	// Milestone is one step of the long-term planning timeline.
	Milestone struct {
		Year        int             `json:"year"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Status      MilestoneStatus `json:"status"`
	}
)

var milestones = []Milestone{
	{Year: 2023, Title: "Controle Financeiro", Description: "Sair das dívidas e organizar orçamento."},
	{Year: 2024, Title: "Reserva de Emergência", Description: "Juntar 6 meses de custo de vida."},
	{Year: 2025, Title: "Início dos Investimentos", Description: "Começar carteira de ações e renda fixa."},
	{Year: 2030, Title: "Casa Própria", Description: "Entrada de 30% no imóvel dos sonhos."},
	{Year: 2045, Title: "Liberdade Financeira", Description: "Viver de renda passiva."},
}

// Timeline returns the planning milestones with statuses derived from the
// current year: the latest milestone whose year has been reached is current,
// everything before it completed, everything after upcoming.
func Timeline(now time.Time) []Milestone {
	out := make([]Milestone, len(milestones))
	copy(out, milestones)

	currentIdx := -1
	for i, m := range out {
		if m.Year <= now.Year() {
			currentIdx = i
		}
	}
	for i := range out {
		switch {
		case i < currentIdx:
			out[i].Status = MilestoneCompleted
		case i == currentIdx:
			out[i].Status = MilestoneCurrent
		default:
			out[i].Status = MilestoneUpcoming
		}
	}
	return out
}

var quotes = []string{
	"Não depender de uma única fonte de renda.",
	"Quem não tem reserva, vive em risco financeiro.",
	"Invista em conhecimento, rende sempre os melhores juros.",
	"Gaste menos do que ganha e invista a diferença.",
	"O hábito de poupar é mais importante que a quantia.",
}

// QuoteOfDay picks the day's financial tip. The choice rotates with the day
// of year so repeated renders within a day stay stable.
func QuoteOfDay(now time.Time) string {
	return quotes[now.YearDay()%len(quotes)]
}
