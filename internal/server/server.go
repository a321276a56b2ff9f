// Package server exposes the calculation engine over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/saas-breakeven/internal/calculator"
	"github.com/iwvelando/saas-breakeven/internal/config"
	"github.com/iwvelando/saas-breakeven/internal/projection"
	"github.com/iwvelando/saas-breakeven/pkg/constants"
	"github.com/iwvelando/saas-breakeven/pkg/output"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Break-even and unit-economics results
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Growth projection, milestones, and cohort retention
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Config serialization endpoint for downloads
	mux.HandleFunc("/api/export", h.handleConfigExport)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type resultsPayload struct {
	BreakEvenAchievable     bool     `json:"breakEvenAchievable"`
	BreakEvenUsers          *float64 `json:"breakEvenUsers,omitempty"`
	WorkingCapital          *float64 `json:"workingCapital,omitempty"`
	MonthlyRevenue          *float64 `json:"monthlyRevenue,omitempty"`
	MonthlyCosts            *float64 `json:"monthlyCosts,omitempty"`
	MonthlyProfit           *float64 `json:"monthlyProfit,omitempty"`
	MonthlyTaxes            *float64 `json:"monthlyTaxes,omitempty"`
	MonthlyGateway          *float64 `json:"monthlyGateway,omitempty"`
	CustomerLifetimeValue   *float64 `json:"customerLifetimeValue,omitempty"`
	CustomerAcquisitionCost float64  `json:"customerAcquisitionCost"`
	Ltv2CacRatio            *float64 `json:"ltv2CacRatio,omitempty"`
	LtvCacRating            string   `json:"ltvCacRating"`
	PaybackPeriodMonths     *float64 `json:"paybackPeriodMonths,omitempty"`
	PaybackRating           string   `json:"paybackRating"`
}

type calculateResponse struct {
	Results  resultsPayload `json:"results"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

type pointPayload struct {
	Month               int     `json:"month"`
	Users               int     `json:"users"`
	NewUsers            int     `json:"newUsers"`
	ChurnedUsers        int     `json:"churnedUsers"`
	RetainedUsers       int     `json:"retainedUsers"`
	Revenue             float64 `json:"revenue"`
	Costs               float64 `json:"costs"`
	Profit              float64 `json:"profit"`
	CumulativeChurnRate float64 `json:"cumulativeChurnRate"`
}

type milestonePayload struct {
	Users   int     `json:"users"`
	Revenue float64 `json:"revenue"`
	Costs   float64 `json:"costs"`
	Profit  float64 `json:"profit"`
}

type cohortPayload struct {
	Month         int `json:"month"`
	RetainedUsers int `json:"retainedUsers"`
}

type fortyPercentPayload struct {
	Users          int     `json:"users"`
	AnnualRevenue  float64 `json:"annualRevenue"`
	CostPercentage float64 `json:"costPercentage"`
	Compliant      bool    `json:"compliant"`
}

type projectionResponse struct {
	Results           resultsPayload        `json:"results"`
	Achievable        bool                  `json:"achievable"`
	MonthsToBreakEven *float64              `json:"monthsToBreakEven,omitempty"`
	Points            []pointPayload        `json:"points,omitempty"`
	Milestones        []milestonePayload    `json:"milestones,omitempty"`
	Cohort            []cohortPayload       `json:"cohort,omitempty"`
	FortyPercentRule  []fortyPercentPayload `json:"fortyPercentRule,omitempty"`
	CSV               string                `json:"csv,omitempty"`
	Warnings          []string              `json:"warnings,omitempty"`
	Duration          string                `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	conf, ok := h.decodeConfiguration(w, r, "server.handleCalculate")
	if !ok {
		return
	}

	warnings := conf.ValidateConfiguration()
	results := calculator.Recompute(h.logger, conf.State())

	response := calculateResponse{
		Results:  buildResultsPayload(results),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	}

	h.logger.Info("calculation served",
		zap.String("op", "server.handleCalculate"),
		zap.Bool("achievable", results.BreakEvenAchievable()),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	conf, ok := h.decodeConfiguration(w, r, "server.handleProjection")
	if !ok {
		return
	}

	warnings := conf.ValidateConfiguration()
	state := conf.State()
	results := calculator.Recompute(h.logger, state)

	initialUsers, growthRate := conf.Params()
	proj := projection.Run(h.logger, state, results, projection.Params{
		InitialUsers:  initialUsers,
		GrowthRatePct: growthRate,
	})

	response := projectionResponse{
		Results:           buildResultsPayload(results),
		Achievable:        proj.Achievable(),
		MonthsToBreakEven: finitePtr(proj.MonthsToBreakEven),
		Warnings:          warnings,
		Duration:          time.Since(start).String(),
	}

	if proj.Achievable() {
		response.Points = buildPoints(proj.Points)
		response.Milestones = buildMilestones(proj.Milestones)
		response.Cohort = buildCohort(proj.Cohort)
		response.FortyPercentRule = buildFortyPercent(proj.FortyPercentRule)
		response.CSV = output.CsvString(proj.Points)
	}

	h.logger.Info("projection served",
		zap.String("op", "server.handleProjection"),
		zap.Bool("achievable", proj.Achievable()),
		zap.Int("points", len(response.Points)),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	payload, ok := h.decodePayload(w, r, "server.handleConfigExport")
	if !ok {
		return
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// decodeConfiguration reads a JSON request body and runs it through the same
// YAML configuration pipeline the CLI uses, so field handling stays
// case-insensitive and identical across surfaces.
func (h *handler) decodeConfiguration(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, bool) {
	payload, ok := h.decodePayload(w, r, op)
	if !ok {
		return nil, false
	}

	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return nil, false
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return conf, true
}

func (h *handler) decodePayload(w http.ResponseWriter, r *http.Request, op string) (map[string]interface{}, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return payload, true
}

// exportKeyOrder fixes the leading key order for exported YAML so downloads
// are stable and diff-friendly; remaining keys follow alphabetically.
var exportKeyOrder = []string{
	"dollarRate",
	"subscriptionPlans",
	"monthlyCosts",
	"annualCosts",
	"perUserCosts",
	"paymentGatewayPercentage",
	"paymentGatewayFixed",
	"taxRate",
	"monthlyChurnRate",
	"acquisitionCostPerUser",
	"projection",
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range exportKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// buildResultsPayload maps sentinel infinities onto omitted pointer fields;
// JSON has no representation for them.
func buildResultsPayload(results calculator.Results) resultsPayload {
	return resultsPayload{
		BreakEvenAchievable:     results.BreakEvenAchievable(),
		BreakEvenUsers:          finitePtr(results.BreakEvenUsers),
		WorkingCapital:          finitePtr(results.WorkingCapital),
		MonthlyRevenue:          finitePtr(results.MonthlyRevenue),
		MonthlyCosts:            finitePtr(results.MonthlyCosts),
		MonthlyProfit:           finitePtr(results.MonthlyProfit),
		MonthlyTaxes:            finitePtr(results.MonthlyTaxes),
		MonthlyGateway:          finitePtr(results.MonthlyGateway),
		CustomerLifetimeValue:   finitePtr(results.CustomerLifetimeValue),
		CustomerAcquisitionCost: results.CustomerAcquisitionCost,
		Ltv2CacRatio:            finitePtr(results.Ltv2CacRatio),
		LtvCacRating:            calculator.LtvCacRating(results.Ltv2CacRatio),
		PaybackPeriodMonths:     finitePtr(results.PaybackPeriodMonths),
		PaybackRating:           calculator.PaybackRating(results.PaybackPeriodMonths),
	}
}

func buildPoints(points []projection.Point) []pointPayload {
	payloads := make([]pointPayload, 0, len(points))
	for _, point := range points {
		payloads = append(payloads, pointPayload{
			Month:               point.Month,
			Users:               point.Users,
			NewUsers:            point.NewUsers,
			ChurnedUsers:        point.ChurnedUsers,
			RetainedUsers:       point.RetainedUsers,
			Revenue:             point.Revenue,
			Costs:               point.Costs,
			Profit:              point.Profit,
			CumulativeChurnRate: point.CumulativeChurnRatePct,
		})
	}
	return payloads
}

func buildMilestones(milestones []projection.MilestonePoint) []milestonePayload {
	payloads := make([]milestonePayload, 0, len(milestones))
	for _, milestone := range milestones {
		payloads = append(payloads, milestonePayload{
			Users:   milestone.Users,
			Revenue: milestone.Revenue,
			Costs:   milestone.Costs,
			Profit:  milestone.Profit,
		})
	}
	return payloads
}

func buildCohort(cohort []projection.CohortPoint) []cohortPayload {
	payloads := make([]cohortPayload, 0, len(cohort))
	for _, point := range cohort {
		payloads = append(payloads, cohortPayload{
			Month:         point.Month,
			RetainedUsers: point.RetainedUsers,
		})
	}
	return payloads
}

func buildFortyPercent(rows []projection.FortyPercentRow) []fortyPercentPayload {
	payloads := make([]fortyPercentPayload, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, fortyPercentPayload{
			Users:          row.Users,
			AnnualRevenue:  row.AnnualRevenue,
			CostPercentage: row.CostPercentage,
			Compliant:      row.Compliant,
		})
	}
	return payloads
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	value := v
	return &value
}
