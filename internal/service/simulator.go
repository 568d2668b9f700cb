package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hsavault/internal/model"
)

// SampleTransaction is one entry of the fixed pool the simulator draws from.
type SampleTransaction struct {
	Merchant string
	Amount   decimal.Decimal
	Category string
}

// sampleTransactions mixes qualified and non-qualified merchants so simulated
// runs exercise both authorization outcomes.
var sampleTransactions = []SampleTransaction{
	{Merchant: "Main Street Clinic", Amount: decimal.RequireFromString("150.00"), Category: "doctor_visit"},
	{Merchant: "CVS Pharmacy", Amount: decimal.RequireFromString("24.99"), Category: "prescription_medication"},
	{Merchant: "City Dental Group", Amount: decimal.RequireFromString("185.00"), Category: "dental_care"},
	{Merchant: "LensCrafters", Amount: decimal.RequireFromString("220.00"), Category: "vision_care"},
	{Merchant: "Mercy Hospital", Amount: decimal.RequireFromString("540.00"), Category: "hospital_services"},
	{Merchant: "Quest Diagnostics", Amount: decimal.RequireFromString("89.00"), Category: "laboratory_tests"},
	{Merchant: "Bay Area Physical Therapy", Amount: decimal.RequireFromString("120.00"), Category: "physical_therapy"},
	{Merchant: "Mindful Counseling Center", Amount: decimal.RequireFromString("65.00"), Category: "mental_health"},
	{Merchant: "MedSupply Co", Amount: decimal.RequireFromString("349.99"), Category: "medical_equipment"},
	{Merchant: "Glow Aesthetics", Amount: decimal.RequireFromString("899.00"), Category: "cosmetic_surgery"},
	{Merchant: "GNC", Amount: decimal.RequireFromString("45.30"), Category: "vitamins_supplements"},
	{Merchant: "Equinox Fitness", Amount: decimal.RequireFromString("89.99"), Category: "gym_membership"},
	{Merchant: "Walgreens", Amount: decimal.RequireFromString("15.49"), Category: "over_the_counter"},
	{Merchant: "Chipotle", Amount: decimal.RequireFromString("12.75"), Category: "restaurant_food"},
	{Merchant: "Zara", Amount: decimal.RequireFromString("79.90"), Category: "clothing"},
	{Merchant: "AMC Theatres", Amount: decimal.RequireFromString("32.00"), Category: "entertainment"},
}

// Simulator drives random expense attempts through the authorizer. Draws are
// unseeded in production use; tests inject a seeded source.
type Simulator interface {
	SimulateOne(ctx context.Context, userID uuid.UUID) (*model.Transaction, decimal.Decimal, string, error)
}

type simulator struct {
	txnService TransactionService
	mu         sync.Mutex
	rnd        *rand.Rand
}

// NewSimulator creates a simulator with a time-seeded source.
func NewSimulator(txnService TransactionService) Simulator {
	return NewSimulatorWithSource(txnService, rand.NewSource(time.Now().UnixNano()))
}

// NewSimulatorWithSource creates a simulator drawing from the given source.
func NewSimulatorWithSource(txnService TransactionService, src rand.Source) Simulator {
	return &simulator{
		txnService: txnService,
		rnd:        rand.New(src),
	}
}

// SimulateOne picks one sample uniformly and runs it through the same
// authorization pipeline as a real expense.
func (s *simulator) SimulateOne(ctx context.Context, userID uuid.UUID) (*model.Transaction, decimal.Decimal, string, error) {
	s.mu.Lock()
	sample := sampleTransactions[s.rnd.Intn(len(sampleTransactions))]
	s.mu.Unlock()

	return s.txnService.Process(ctx, userID, sample.Amount, sample.Merchant, sample.Category)
}
