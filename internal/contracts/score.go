package contracts

import "time"

// RiskLevel is the qualitative label attached to a composite score
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW RUG RISK"
	RiskModerate RiskLevel = "MODERATE RISK"
	RiskHigh     RiskLevel = "HIGH RUG RISK"
)

// SubSignal is one weighted dimension of the composite score
type SubSignal struct {
	Label    string  `json:"label"`
	RawScore int     `json:"rawScore"`
	Weight   float64 `json:"weight"`
	Score    int     `json:"score"` // after degradation
}

// ScoreResult is the output of one scoring run
// ⭐ SSOT: 스코어 결과 전달은 이 구조체로만
type ScoreResult struct {
	TotalScore        int         `json:"totalScore"`
	RiskLevel         RiskLevel   `json:"riskLevel"`
	DegradationFactor float64     `json:"degradationFactor"`
	Clamped           bool        `json:"clamped"`
	Signals           []SubSignal `json:"signals"`
}

// Signal returns the sub-signal with the given label
func (r *ScoreResult) Signal(label string) (SubSignal, bool) {
	for _, s := range r.Signals {
		if s.Label == label {
			return s, true
		}
	}
	return SubSignal{}, false
}

// IsMoon reports whether the result counts as a "moon" detection
func (r *ScoreResult) IsMoon() bool {
	return r.TotalScore >= 70
}

// ScanReport is a scored token as returned by the scan service
type ScanReport struct {
	Mint              string      `json:"mint"`
	Token             *TokenInfo  `json:"token,omitempty"`
	TotalScore        int         `json:"totalScore"`
	RiskLevel         RiskLevel   `json:"riskLevel"`
	Explanation       string      `json:"explanation"`
	ShareText         string      `json:"shareText"`
	DegradationFactor float64     `json:"degradationFactor"`
	Clamped           bool        `json:"clamped"`
	Signals           []SubSignal `json:"signals"`
	SnapshotAvailable bool        `json:"snapshotAvailable"`
	ScannedAt         time.Time   `json:"scannedAt"`
}
