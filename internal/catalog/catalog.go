// Package catalog holds the fixed set of trackable sections and their
// entry form schemas.
package catalog

import (
	"github.com/julianstephens/lifetrack/internal/models"
)

func ratingScale(labels ...string) []models.Option {
	opts := make([]models.Option, len(labels))
	for i, label := range labels {
		opts[i] = models.Option{Value: i + 1, Label: label}
	}
	return opts
}

var sections = []models.Section{
	{
		ID:          "gate",
		Name:        "GATE 2026 Preparation",
		Description: "Track your GATE exam preparation progress",
		Icon:        "book",
		Fields: []models.Field{
			{ID: "studied", Name: "Did you study?", Type: models.FieldBoolean, Required: true},
			{ID: "details", Name: "What was done?", Type: models.FieldLongText, Placeholder: "Describe what you studied"},
			{ID: "time", Name: "Time spent (hours)", Type: models.FieldNumber, Required: true},
			{ID: "topics", Name: "Topics covered", Type: models.FieldText},
		},
	},
	{
		ID:          "jobs",
		Name:        "Job Applications",
		Description: "Track your job application progress",
		Icon:        "briefcase",
		Fields: []models.Field{
			{ID: "status", Name: "Updated status?", Type: models.FieldBoolean, Required: true},
			{ID: "count", Name: "No. of applications", Type: models.FieldNumber, Required: true},
			{ID: "where", Name: "Where applied", Type: models.FieldLongText, Placeholder: "List companies and positions"},
			{ID: "feedback", Name: "Feedback", Type: models.FieldLongText, Placeholder: "Any feedback received"},
		},
	},
	{
		ID:          "work",
		Name:        "Office Work",
		Description: "Track your daily work activities",
		Icon:        "clipboard",
		Fields: []models.Field{
			{ID: "summary", Name: "Work summary", Type: models.FieldLongText, Placeholder: "Summarize your day at work", Required: true},
			{ID: "satisfaction", Name: "Satisfaction rating", Type: models.FieldRating, Required: true, Options: ratingScale(
				"Very Unsatisfied", "Unsatisfied", "Neutral", "Satisfied", "Very Satisfied",
			)},
		},
	},
	{
		ID:          "peace",
		Name:        "Geeta/Book for Peace",
		Description: "Track your reading for mental peace",
		Icon:        "book-open",
		Frequency:   "2x/week",
		Fields: []models.Field{
			{ID: "did", Name: "Did something peaceful?", Type: models.FieldBoolean, Required: true},
			{ID: "what", Name: "What was it?", Type: models.FieldText, Placeholder: "Describe your peaceful activity"},
		},
	},
	{
		ID:          "dsa",
		Name:        "DSA/Leetcode/GFG",
		Description: "Track your coding practice",
		Icon:        "code",
		Frequency:   "2x/week",
		Fields: []models.Field{
			{ID: "platform", Name: "Platform", Type: models.FieldText, Placeholder: "Which platform did you use?", Required: true},
			{ID: "problems", Name: "Problems solved", Type: models.FieldNumber, Required: true},
			{ID: "topics", Name: "Topics", Type: models.FieldText, Placeholder: "What topics did you cover?"},
		},
	},
	{
		ID:          "content",
		Name:        "Content Posting",
		Description: "Track your social media content",
		Icon:        "edit",
		Fields: []models.Field{
			{ID: "posted", Name: "Posted something?", Type: models.FieldBoolean, Required: true},
			{ID: "topic", Name: "Topic", Type: models.FieldText, Placeholder: "What did you post about?"},
		},
	},
	{
		ID:          "diet",
		Name:        "No Sugar/Maida Goal",
		Description: "Track your diet restriction goals",
		Icon:        "utensils",
		Fields: []models.Field{
			{ID: "stuck", Name: "Stuck to goal?", Type: models.FieldBoolean, Required: true},
			{ID: "eaten", Name: "What was eaten?", Type: models.FieldLongText, Placeholder: "List what you ate today"},
		},
	},
	{
		ID:          "money",
		Name:        "Money Tracking",
		Description: "Track your expenses and income",
		Icon:        "money",
		Fields: []models.Field{
			{ID: "spent", Name: "Money spent", Type: models.FieldNumber, Required: true},
			{ID: "on", Name: "Spent on", Type: models.FieldText, Placeholder: "What did you spend on?", Required: true},
			{ID: "income", Name: "Any income?", Type: models.FieldBoolean, Required: true},
			{ID: "source", Name: "Source", Type: models.FieldText, Placeholder: "Source of income"},
		},
	},
	{
		ID:          "satisfaction",
		Name:        "Whole Day Satisfaction",
		Description: "Rate your overall day",
		Icon:        "smile",
		Fields: []models.Field{
			{ID: "rating", Name: "Rating", Type: models.FieldRating, Required: true, Options: ratingScale(
				"Terrible", "Bad", "Poor", "Fair", "Average", "Good", "Very Good", "Great", "Excellent", "Perfect",
			)},
			{ID: "improve", Name: "How to improve?", Type: models.FieldLongText, Placeholder: "What would make tomorrow better?"},
		},
	},
	{
		ID:          "gratitude",
		Name:        "Gratitude",
		Description: "Practice daily gratitude",
		Icon:        "heart",
		Fields: []models.Field{
			{ID: "thankful", Name: "One thing you're thankful for", Type: models.FieldLongText, Required: true},
		},
	},
	{
		ID:          "offchest",
		Name:        "Off the Chest",
		Description: "Write anything on your mind",
		Icon:        "feather",
		Fields: []models.Field{
			{ID: "anything", Name: "Anything to write?", Type: models.FieldLongText, Placeholder: "Get it off your chest", Required: true},
		},
	},
	{
		ID:          "ai",
		Name:        "AI Learning",
		Description: "Track your AI learning progress",
		Icon:        "code",
		Fields: []models.Field{
			{ID: "activity", Name: "Any AI-related activity?", Type: models.FieldLongText, Placeholder: "What did you learn about AI today?", Required: true},
		},
	},
}

// ListSections returns the catalog in display order. The result is a copy.
func ListSections() []models.Section {
	out := make([]models.Section, len(sections))
	for i, s := range sections {
		out[i] = s.Clone()
	}
	return out
}

// Get looks up a section by id.
func Get(id string) (models.Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return models.Section{}, false
}

// Name returns the display name for a section id, or the id itself when the
// section is not in the catalog.
func Name(id string) string {
	if s, ok := Get(id); ok {
		return s.Name
	}
	return id
}
