package models

import "time"

// CalculatorState is the step the calculator view is on.
type CalculatorState string

const (
	CalculatorStateInput   CalculatorState = "input"
	CalculatorStateResults CalculatorState = "results"
)

// CalculatorInputs is what the user has selected so far.
type CalculatorInputs struct {
	AccountTypeID string  `json:"accountTypeId"`
	InstrumentID  string  `json:"instrumentId,omitempty"`
	Lots          float64 `json:"lots"`
}

// CalculatorSession is the complete view state of one open calculator.
// It owns its catalog snapshot for its whole lifetime.
type CalculatorSession struct {
	ID           string              `json:"id"`
	State        CalculatorState     `json:"state"`
	Inputs       CalculatorInputs    `json:"inputs"`
	CanCalculate bool                `json:"canCalculate"`
	Results      []CalculationResult `json:"results"`
	Display      []DisplayResult     `json:"display"`
	Catalog      *Catalog            `json:"catalog"`
	OpenedAt     time.Time           `json:"openedAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
