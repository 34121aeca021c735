package config

import "content-api/internal/models"

// DefaultFreePlan is the in-memory fallback applied to users without a
// persisted subscription. It mirrors the seeded "free" tier but is never
// written to the database.
func DefaultFreePlan() *models.SubscriptionPlan {
	return &models.SubscriptionPlan{
		Name:         "free",
		DisplayName:  "Free Plan",
		Price:        0,
		MonthlyLimit: 5,
		DailyLimit:   1,
		Features:     `["5 generations per month"]`,
	}
}

// SeedPlans is the catalog installed on first boot. Admin edits persist on
// top of these rows.
func SeedPlans() []models.SubscriptionPlan {
	return []models.SubscriptionPlan{
		{
			Name:         "free",
			DisplayName:  "Free Plan",
			Description:  "Try the generator with a small daily allowance",
			Price:        0,
			MonthlyLimit: 5,
			DailyLimit:   1,
			Features:     `["5 generations per month"]`,
		},
		{
			Name:         "pro",
			DisplayName:  "Pro Plan",
			Description:  "For regular content producers",
			Price:        999,
			MonthlyLimit: 100,
			DailyLimit:   10,
			Features:     `["100 generations per month","priority support"]`,
		},
		{
			Name:         "premium",
			DisplayName:  "Premium Plan",
			Description:  "High volume content production",
			Price:        2999,
			MonthlyLimit: 500,
			DailyLimit:   50,
			Features:     `["500 generations per month","priority support","early access"]`,
		},
	}
}
