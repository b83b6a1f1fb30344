package model

// SampleDecisions returns read-only example decisions, complete with
// finished analysis results, that can be seeded into a store so new users
// have something to explore.
func SampleDecisions() []Decision {
	return []Decision{
		{
			DecisionFormData: DecisionFormData{
				Title:   "Choose a Programming Language to Learn",
				Context: "I'm a beginner looking to start my programming journey. I want to learn a language that has good job prospects, is beginner-friendly, and can be used for various types of projects including web development and data science.",
				Options: []Option{
					{ID: "1", Label: "Python", Notes: "Versatile, beginner-friendly, great for data science and web development"},
					{ID: "2", Label: "JavaScript", Notes: "Essential for web development, runs everywhere, huge ecosystem"},
					{ID: "3", Label: "Java", Notes: "Enterprise-focused, strong typing, Android development"},
				},
				Criteria: []Criterion{
					{ID: "1", Name: "Learning Curve", Weight: 9, Description: "How easy is it to learn for beginners"},
					{ID: "2", Name: "Job Market", Weight: 8, Description: "Availability of jobs and career opportunities"},
					{ID: "3", Name: "Versatility", Weight: 7, Description: "Can be used for multiple types of projects"},
					{ID: "4", Name: "Community Support", Weight: 6, Description: "Size and helpfulness of the community"},
				},
			},
			Status: StatusDone,
			Result: &AnalysisResult{
				Recommendation: Recommendation{
					OptionID:    "1",
					OptionLabel: "Python",
					Confidence:  0.89,
					Summary:     "Python is the ideal choice for beginners. It has the gentlest learning curve with readable syntax, excellent job prospects especially in data science and AI, and incredible versatility. The massive community ensures you'll always find help when needed.",
				},
				Scores: []OptionScore{
					{
						OptionID: "1", OptionLabel: "Python", TotalScore: 95,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Learning Curve", Score: 9},
							{CriterionID: "2", CriterionName: "Job Market", Score: 9},
							{CriterionID: "3", CriterionName: "Versatility", Score: 10},
							{CriterionID: "4", CriterionName: "Community Support", Score: 10},
						},
					},
					{
						OptionID: "2", OptionLabel: "JavaScript", TotalScore: 90,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Learning Curve", Score: 7},
							{CriterionID: "2", CriterionName: "Job Market", Score: 10},
							{CriterionID: "3", CriterionName: "Versatility", Score: 9},
							{CriterionID: "4", CriterionName: "Community Support", Score: 10},
						},
					},
					{
						OptionID: "3", OptionLabel: "Java", TotalScore: 70,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Learning Curve", Score: 5},
							{CriterionID: "2", CriterionName: "Job Market", Score: 8},
							{CriterionID: "3", CriterionName: "Versatility", Score: 7},
							{CriterionID: "4", CriterionName: "Community Support", Score: 8},
						},
					},
				},
				Reasoning: Reasoning{
					Decomposition: "Each language was scored against the four criteria, weighted by importance, with emphasis on beginner accessibility.",
					Assumptions: []string{
						"You're starting from scratch with no prior programming experience",
						"You want to maximize career opportunities",
						"You prefer a language with extensive learning resources",
					},
					Tradeoffs: []string{
						"Python: Slower execution speed, but faster development time",
						"JavaScript: Required for web frontend, but can be confusing for beginners",
						"Java: More verbose syntax, but strong typing helps catch errors",
					},
					Risks: []string{
						"Python: May need to learn JavaScript later for web frontend",
						"JavaScript: Ecosystem changes rapidly, requires constant learning",
						"Java: Steeper learning curve may discourage beginners",
					},
					Sensitivity: "If Job Market outweighed Learning Curve, JavaScript would close most of the gap.",
				},
			},
		},
		{
			DecisionFormData: DecisionFormData{
				Title:   "Select a Cloud Provider for Startup",
				Context: "Our startup is building a SaaS product and needs to choose a cloud provider. We need scalability, good developer experience, reasonable pricing, and strong support for containerized applications.",
				Options: []Option{
					{ID: "1", Label: "AWS", Notes: "Market leader, most comprehensive services, largest ecosystem"},
					{ID: "2", Label: "Google Cloud", Notes: "Strong in AI/ML, Kubernetes-native, competitive pricing"},
					{ID: "3", Label: "Azure", Notes: "Great for enterprise, Microsoft integration, hybrid cloud"},
				},
				Criteria: []Criterion{
					{ID: "1", Name: "Pricing", Weight: 9, Description: "Cost-effectiveness for startup budget"},
					{ID: "2", Name: "Developer Experience", Weight: 8, Description: "Ease of use and documentation quality"},
					{ID: "3", Name: "Scalability", Weight: 8, Description: "Ability to grow with our needs"},
					{ID: "4", Name: "Container Support", Weight: 7, Description: "Quality of Kubernetes and container services"},
				},
				Constraints: []Constraint{
					{ID: "1", Type: ConstraintBudget, Value: "Monthly budget under $5000", Priority: 5},
				},
			},
			Status: StatusDone,
			Result: &AnalysisResult{
				Recommendation: Recommendation{
					OptionID:    "2",
					OptionLabel: "Google Cloud",
					Confidence:  0.85,
					Summary:     "Google Cloud offers the best balance for your startup. It has competitive pricing with generous free tiers, excellent Kubernetes support (they invented it), and a clean developer experience. The AI/ML capabilities will be valuable as you grow.",
				},
				Scores: []OptionScore{
					{
						OptionID: "2", OptionLabel: "Google Cloud", TotalScore: 92,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Pricing", Score: 9},
							{CriterionID: "2", CriterionName: "Developer Experience", Score: 9},
							{CriterionID: "3", CriterionName: "Scalability", Score: 9},
							{CriterionID: "4", CriterionName: "Container Support", Score: 10},
						},
					},
					{
						OptionID: "1", OptionLabel: "AWS", TotalScore: 80,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Pricing", Score: 7},
							{CriterionID: "2", CriterionName: "Developer Experience", Score: 7},
							{CriterionID: "3", CriterionName: "Scalability", Score: 10},
							{CriterionID: "4", CriterionName: "Container Support", Score: 8},
						},
					},
					{
						OptionID: "3", OptionLabel: "Azure", TotalScore: 80,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Pricing", Score: 7},
							{CriterionID: "2", CriterionName: "Developer Experience", Score: 8},
							{CriterionID: "3", CriterionName: "Scalability", Score: 9},
							{CriterionID: "4", CriterionName: "Container Support", Score: 8},
						},
					},
				},
				Reasoning: Reasoning{
					Decomposition: "Providers were scored on the four criteria with pricing weighted heaviest, reflecting startup budget sensitivity.",
					Assumptions: []string{
						"You're building a containerized application",
						"Your team is comfortable with modern DevOps practices",
						"You don't have existing Microsoft infrastructure",
					},
					Tradeoffs: []string{
						"GCP: Smaller ecosystem than AWS, but cleaner APIs",
						"AWS: Most services available, but steeper learning curve",
						"Azure: Best for Microsoft shops, less relevant otherwise",
					},
					Risks: []string{
						"GCP: Smaller market share means fewer third-party integrations",
						"AWS: Complex pricing can lead to unexpected costs",
						"Azure: May be overkill if not using Microsoft stack",
					},
					Sensitivity: "Raising the Scalability weight pulls AWS even with Google Cloud; the pricing weight is what separates them.",
				},
			},
		},
		{
			DecisionFormData: DecisionFormData{
				Title:   "Choose a Project Management Tool",
				Context: "Our remote team of 15 people needs a project management tool. We work in sprints, need good collaboration features, and want something that's easy to onboard new team members.",
				Options: []Option{
					{ID: "1", Label: "Jira", Notes: "Industry standard, powerful features, Atlassian ecosystem"},
					{ID: "2", Label: "Linear", Notes: "Modern, fast, keyboard-first, great for engineering teams"},
					{ID: "3", Label: "Asana", Notes: "User-friendly, flexible, good for cross-functional teams"},
				},
				Criteria: []Criterion{
					{ID: "1", Name: "Ease of Use", Weight: 9, Description: "How quickly can new team members get productive"},
					{ID: "2", Name: "Features", Weight: 8, Description: "Sprint planning, reporting, integrations"},
					{ID: "3", Name: "Performance", Weight: 7, Description: "Speed and responsiveness of the tool"},
					{ID: "4", Name: "Pricing", Weight: 7, Description: "Cost per user per month"},
				},
				Constraints: []Constraint{
					{ID: "1", Type: ConstraintBudget, Value: "Under $20 per user per month", Priority: 5},
				},
			},
			Status: StatusDone,
			Result: &AnalysisResult{
				Recommendation: Recommendation{
					OptionID:    "2",
					OptionLabel: "Linear",
					Confidence:  0.87,
					Summary:     "Linear is the best fit for your engineering team. It's incredibly fast, has a modern interface that developers love, and includes all essential features for sprint planning. The keyboard shortcuts make power users extremely productive.",
				},
				Scores: []OptionScore{
					{
						OptionID: "2", OptionLabel: "Linear", TotalScore: 90,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Ease of Use", Score: 9},
							{CriterionID: "2", CriterionName: "Features", Score: 9},
							{CriterionID: "3", CriterionName: "Performance", Score: 10},
							{CriterionID: "4", CriterionName: "Pricing", Score: 8},
						},
					},
					{
						OptionID: "3", OptionLabel: "Asana", TotalScore: 83,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Ease of Use", Score: 10},
							{CriterionID: "2", CriterionName: "Features", Score: 8},
							{CriterionID: "3", CriterionName: "Performance", Score: 7},
							{CriterionID: "4", CriterionName: "Pricing", Score: 8},
						},
					},
					{
						OptionID: "1", OptionLabel: "Jira", TotalScore: 70,
						CriteriaScores: []CriterionScore{
							{CriterionID: "1", CriterionName: "Ease of Use", Score: 5},
							{CriterionID: "2", CriterionName: "Features", Score: 10},
							{CriterionID: "3", CriterionName: "Performance", Score: 6},
							{CriterionID: "4", CriterionName: "Pricing", Score: 7},
						},
					},
				},
				Reasoning: Reasoning{
					Decomposition: "Tools were scored per criterion with ease of use weighted heaviest, since onboarding speed was the stated pain point.",
					Assumptions: []string{
						"Your team is primarily engineering-focused",
						"You value speed and efficiency",
						"You don't need complex enterprise workflows",
					},
					Tradeoffs: []string{
						"Linear: Newer tool with smaller ecosystem",
						"Asana: More flexible but less engineering-focused",
						"Jira: Most powerful but steepest learning curve",
					},
					Risks: []string{
						"Linear: May lack some advanced reporting features",
						"Asana: Can become cluttered with too many features",
						"Jira: Team may resist due to complexity",
					},
					Sensitivity: "If Features outweighed Ease of Use, Jira would overtake Asana but still trail Linear.",
				},
			},
		},
	}
}
