package models

import (
	"github.com/ChipUtah/HeatherDees/config"
)

type PlanCode string

const (
	PlanSixMonthInPerson   PlanCode = "6-inperson"
	PlanThreeMonthInPerson PlanCode = "3-inperson"
	PlanSixMonthOnline     PlanCode = "6-online"
)

// PhaseDefinition is one contiguous run of billing cycles at a single price.
// Iterations is how many cycles the phase repeats before the schedule advances
// to the next phase, or ends if it is the last one.
type PhaseDefinition struct {
	PriceID    string `json:"priceId"`
	Iterations int64  `json:"iterations"`
}

type Plan struct {
	Code   PlanCode          `json:"code"`
	Name   string            `json:"name"`
	Phases []PhaseDefinition `json:"phases"`
}

// PlanCatalog is the fixed set of plans a customer can check out with.
// Phase order is significant: schedules play the phases front to back.
type PlanCatalog struct {
	plans map[PlanCode]Plan
}

func NewPlanCatalog(prices config.Prices) *PlanCatalog {
	plans := []Plan{
		{
			Code: PlanSixMonthInPerson,
			Name: "6 Month In Person",
			Phases: []PhaseDefinition{
				{PriceID: prices.Price500, Iterations: 1},
				{PriceID: prices.Price400, Iterations: 5},
			},
		},
		{
			Code: PlanThreeMonthInPerson,
			Name: "3 Month In Person",
			Phases: []PhaseDefinition{
				{PriceID: prices.Price500, Iterations: 1},
				{PriceID: prices.Price400, Iterations: 2},
			},
		},
		{
			Code: PlanSixMonthOnline,
			Name: "Online Body Transformation",
			Phases: []PhaseDefinition{
				{PriceID: prices.Price300, Iterations: 1},
				{PriceID: prices.Price200, Iterations: 5},
			},
		},
	}

	byCode := make(map[PlanCode]Plan, len(plans))
	for _, p := range plans {
		byCode[p.Code] = p
	}
	return &PlanCatalog{plans: byCode}
}

// Get resolves a raw plan code. The second return is false for anything
// outside the catalog, including the empty string.
func (c *PlanCatalog) Get(code string) (Plan, bool) {
	plan, ok := c.plans[PlanCode(code)]
	return plan, ok
}
