package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/gedeza/business-consulting/core/types"
)

// Built-in service names
const (
	ProposalWritingServiceName = "Business Proposal Writing"
	BusinessPlanServiceName    = "Business Plan Development"
	DocumentationServiceName   = "Business Documentation"
	FundingServiceName         = "Funding Proposal Support"
)

func task(name string, hours int64, description string) types.Task {
	return types.Task{Name: name, Hours: decimal.NewFromInt(hours), Description: description}
}

func perDocumentTask(name string, hours int64, description string) types.Task {
	t := task(name, hours, description)
	t.PerDocument = true
	return t
}

// Builtins returns the built-in services in catalog order
func Builtins() []types.Service {
	return []types.Service{
		{
			Name:        ProposalWritingServiceName,
			Description: "Crafting compelling and persuasive proposals to help you win new business and secure funding.",
			Tasks: []types.Task{
				task("Initial Client Assessment", 1, "A thorough consultation to understand your business, goals, and specific proposal requirements."),
				task("Research and Analysis", 2, "In-depth research of your target audience, market, and competitors to inform the proposal strategy."),
				task("Proposal Structuring", 1, "Creating a logical and professional structure for the proposal to ensure clarity and impact."),
				task("Content Development", 4, "Writing clear, concise, and persuasive content that highlights your strengths and value proposition."),
				task("Review and Refinement", 2, "Multiple rounds of review and editing to ensure the proposal is error-free and polished."),
				task("Submission Support", 1, "Assistance with the final submission process to ensure all requirements are met."),
			},
			GroundworkReduction: true,
			PricingModel:        types.PricingHourly,
		},
		{
			Name:        BusinessPlanServiceName,
			Description: "Developing a comprehensive and strategic business plan to guide your decisions and attract investors.",
			Tasks: []types.Task{
				task("Client Needs Assessment", 2, "A deep dive into your business model, objectives, and financial goals."),
				task("Market and Industry Research", 3, "Comprehensive analysis of the market landscape, industry trends, and competitive positioning."),
				task("Financial Projections", 4, "Creating detailed financial forecasts, including income statements, balance sheets, and cash flow statements."),
				task("Plan Structuring and Writing", 6, "Structuring and writing the complete business plan document, including all key sections."),
				task("Review and Finalization", 2, "Thorough review of the business plan for accuracy, completeness, and impact."),
				task("Pitch Support (Optional)", 2, "Assistance in preparing and delivering a compelling pitch to investors or stakeholders."),
			},
			GroundworkReduction: true,
			PricingModel:        types.PricingHourly,
		},
		{
			Name:        DocumentationServiceName,
			Description: "Creating professional and effective business documents, such as reports, manuals, and presentations.",
			Tasks: []types.Task{
				task("Client Requirements Gathering", 2, "Detailed consultation to understand the purpose, audience, and key requirements of the document."),
				task("Research and Benchmarking", 2, "Gathering and analyzing information to ensure the document is accurate, relevant, and up-to-date."),
				task("Document Structuring", 2, "Creating a clear and logical structure for the document to enhance readability and usability."),
				perDocumentTask("Content Development (per document)", 5, "Writing and formatting the content for each document to meet the specific requirements."),
				perDocumentTask("Review and Refinement (per document)", 2, "Reviewing and editing each document to ensure quality, accuracy, and consistency."),
				task("Implementation Support (Optional)", 1, "Providing support and guidance on how to effectively use and implement the documentation."),
			},
			RequiresDocCount:    true,
			GroundworkReduction: true,
			PricingModel:        types.PricingHourly,
		},
		{
			Name:         FundingServiceName,
			Description:  "Securing development funding on your behalf, priced as a share of the funding value plus a fixed security fee.",
			PricingModel: types.PricingPercentage,
		},
	}
}
