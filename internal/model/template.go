package model

import "github.com/google/uuid"

// DecisionTemplate is a built-in starting point for a common decision type.
// Template IDs inside the form data are placeholders; Instantiate assigns
// fresh ones.
type DecisionTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Form        DecisionFormData `json:"form"`
}

// Templates returns the built-in decision templates.
func Templates() []DecisionTemplate {
	return decisionTemplates
}

// TemplateByID looks up a template by its id.
func TemplateByID(id string) (DecisionTemplate, bool) {
	for _, t := range decisionTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return DecisionTemplate{}, false
}

// TemplateCategories returns the distinct template categories in definition order.
func TemplateCategories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range decisionTemplates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Instantiate deep-copies a template's form data with fresh UUIDs so edits
// to the new decision never alias template state.
func (t DecisionTemplate) Instantiate() DecisionFormData {
	form := DecisionFormData{
		Title:   t.Form.Title,
		Context: t.Form.Context,
	}
	for _, o := range t.Form.Options {
		o.ID = uuid.New().String()
		form.Options = append(form.Options, o)
	}
	for _, c := range t.Form.Criteria {
		c.ID = uuid.New().String()
		form.Criteria = append(form.Criteria, c)
	}
	for _, c := range t.Form.Constraints {
		c.ID = uuid.New().String()
		form.Constraints = append(form.Constraints, c)
	}
	return form
}

var decisionTemplates = []DecisionTemplate{
	{
		ID:          "job-change",
		Name:        "Job Change Decision",
		Description: "Evaluate job offers and career moves",
		Category:    "Career",
		Form: DecisionFormData{
			Title:   "Should I accept the new job offer?",
			Context: "Considering a career move. Current role vs new opportunity.",
			Options: []Option{
				{Label: "Stay at current job"},
				{Label: "Accept new offer"},
			},
			Criteria: []Criterion{
				{Name: "Salary & Benefits", Weight: 9, Description: "Compensation package"},
				{Name: "Career Growth", Weight: 8, Description: "Learning and advancement opportunities"},
				{Name: "Work-Life Balance", Weight: 7, Description: "Hours, flexibility, commute"},
				{Name: "Company Culture", Weight: 6, Description: "Team dynamics and values"},
				{Name: "Job Security", Weight: 5, Description: "Stability and company health"},
			},
			Constraints: []Constraint{
				{Type: ConstraintTimeline, Value: "2 weeks to decide", Priority: 4},
			},
		},
	},
	{
		ID:          "relocation",
		Name:        "Relocation Decision",
		Description: "Decide whether to move to a new city or country",
		Category:    "Life",
		Form: DecisionFormData{
			Title:   "Should I relocate to [City]?",
			Context: "Considering moving to a new location for work/life reasons.",
			Options: []Option{
				{Label: "Stay in current location"},
				{Label: "Relocate"},
			},
			Criteria: []Criterion{
				{Name: "Cost of Living", Weight: 9, Description: "Housing, expenses, taxes"},
				{Name: "Career Opportunities", Weight: 8, Description: "Job market and growth"},
				{Name: "Quality of Life", Weight: 8, Description: "Weather, amenities, lifestyle"},
				{Name: "Social Network", Weight: 6, Description: "Friends, family proximity"},
				{Name: "Healthcare & Education", Weight: 7, Description: "Access to services"},
			},
			Constraints: []Constraint{
				{Type: ConstraintBudget, Value: "Moving costs", Priority: 5},
			},
		},
	},
	{
		ID:          "feature-priority",
		Name:        "Feature Prioritization",
		Description: "Prioritize product features for development",
		Category:    "Product",
		Form: DecisionFormData{
			Title:   "Which feature should we build next?",
			Context: "Limited development resources. Need to prioritize features for maximum impact.",
			Options: []Option{
				{Label: "Feature A"},
				{Label: "Feature B"},
				{Label: "Feature C"},
			},
			Criteria: []Criterion{
				{Name: "User Impact", Weight: 10, Description: "How many users benefit"},
				{Name: "Revenue Potential", Weight: 9, Description: "Expected revenue increase"},
				{Name: "Development Effort", Weight: 8, Description: "Time and resources needed"},
				{Name: "Strategic Alignment", Weight: 7, Description: "Fits company vision"},
				{Name: "Technical Debt", Weight: 5, Description: "Long-term maintenance"},
			},
			Constraints: []Constraint{
				{Type: ConstraintTimeline, Value: "1 quarter", Priority: 5},
				{Type: ConstraintBudget, Value: "2 engineers", Priority: 4},
			},
		},
	},
	{
		ID:          "vendor-selection",
		Name:        "Vendor Selection",
		Description: "Choose between service providers or tools",
		Category:    "Business",
		Form: DecisionFormData{
			Title:   "Which vendor/tool should we choose?",
			Context: "Evaluating different vendors for our business needs.",
			Options: []Option{
				{Label: "Vendor A"},
				{Label: "Vendor B"},
				{Label: "Vendor C"},
			},
			Criteria: []Criterion{
				{Name: "Cost", Weight: 9, Description: "Total cost of ownership"},
				{Name: "Features", Weight: 8, Description: "Functionality and capabilities"},
				{Name: "Integration", Weight: 7, Description: "Works with existing tools"},
				{Name: "Support", Weight: 6, Description: "Customer service quality"},
				{Name: "Scalability", Weight: 7, Description: "Grows with business"},
			},
			Constraints: []Constraint{
				{Type: ConstraintBudget, Value: "Annual budget", Priority: 5},
			},
		},
	},
	{
		ID:          "investment",
		Name:        "Investment Decision",
		Description: "Evaluate investment opportunities",
		Category:    "Finance",
		Form: DecisionFormData{
			Title:   "Where should I invest my money?",
			Context: "Have savings to invest. Evaluating different investment options.",
			Options: []Option{
				{Label: "Stocks/Index Funds"},
				{Label: "Real Estate"},
				{Label: "Bonds"},
			},
			Criteria: []Criterion{
				{Name: "Expected Returns", Weight: 9, Description: "Potential ROI"},
				{Name: "Risk Level", Weight: 8, Description: "Volatility and safety"},
				{Name: "Liquidity", Weight: 7, Description: "Easy to access funds"},
				{Name: "Time Horizon", Weight: 6, Description: "Investment duration"},
				{Name: "Tax Efficiency", Weight: 5, Description: "Tax implications"},
			},
			Constraints: []Constraint{
				{Type: ConstraintBudget, Value: "Investment amount", Priority: 5},
			},
		},
	},
	{
		ID:          "education",
		Name:        "Education Path",
		Description: "Choose educational programs or courses",
		Category:    "Education",
		Form: DecisionFormData{
			Title:   "Which educational path should I pursue?",
			Context: "Considering different educational opportunities for career advancement.",
			Options: []Option{
				{Label: "Master's Degree"},
				{Label: "Online Certification"},
				{Label: "Bootcamp"},
			},
			Criteria: []Criterion{
				{Name: "Career Impact", Weight: 9, Description: "Job prospects improvement"},
				{Name: "Cost", Weight: 8, Description: "Tuition and expenses"},
				{Name: "Time Commitment", Weight: 7, Description: "Duration and flexibility"},
				{Name: "Quality & Reputation", Weight: 8, Description: "Program recognition"},
				{Name: "Practical Skills", Weight: 7, Description: "Hands-on learning"},
			},
			Constraints: []Constraint{
				{Type: ConstraintBudget, Value: "Education budget", Priority: 5},
				{Type: ConstraintTimeline, Value: "Start date", Priority: 4},
			},
		},
	},
}
