package service

import (
	"legal-agent-be/internal/entity"
	"legal-agent-be/pkg/llm"
	"legal-agent-be/pkg/pipeline"
)

// Artifact names within a run's directory.
const (
	SummaryArtifact      = "contract_summary.md"
	DeliverablesArtifact = "deliverables.json"
)

// BuildCrew assembles the task list for the requested review mode. Mode is
// pure selection; the two crews share nothing at runtime beyond the
// provider and the per-run artifact directory.
func BuildCrew(mode entity.Mode, provider llm.LLMProvider, searchTool pipeline.Tool, artifactDir string) *pipeline.Crew {
	if mode == entity.ModeCreator {
		return buildCreatorCrew(provider, searchTool, artifactDir)
	}
	return buildLegalCrew(provider, searchTool, artifactDir)
}

func buildLegalCrew(provider llm.LLMProvider, searchTool pipeline.Tool, artifactDir string) *pipeline.Crew {
	researcher := &pipeline.Agent{
		Role: "Contract Parsing Specialist",
		Goal: "Extract and classify clauses from uploaded contracts, identifying their purpose and context, " +
			"and detect any mentioned company or organization names for inclusion in downstream reporting.",
		Backstory: "You are an expert in understanding the structure of legal contracts. You can quickly identify " +
			"sections like payment terms, confidentiality, termination, and liability, and rewrite them in " +
			"structured, easy-to-parse text for further analysis.",
	}

	riskAnalyzer := &pipeline.Agent{
		Role: "Contract Risk Analyst",
		Goal: "Detect and rate potential legal and ethical risks in contract clauses. " +
			"Identify terms that could cause legal harm or unfair obligations.",
		Backstory: "You are a cautious and thorough legal analyst trained to spot red flags in agreements. " +
			"You flag any terms that might be unfair, vague, one-sided, or harmful to the user's rights.",
	}

	legalResearcher := &pipeline.Agent{
		Role: "Legal Research Assistant",
		Goal: "Quickly identify and evaluate potential legal and business risks. " +
			"Do not make up information that is not within the text.",
		Backstory: "You are a skilled legal researcher capable of finding definitions, precedents, and " +
			"explanations online using trusted sources and summarizing findings concisely.",
		Tool: searchTool,
	}

	userAdvocate := &pipeline.Agent{
		Role: "Consumer Legal Advisor",
		Goal: "Summarize and simplify the contract analysis into clear, plain English explanations.",
		Backstory: "You are an empathetic communicator who translates legal findings into simple, actionable " +
			"advice for non-lawyers. You never provide legal advice, only educational summaries.",
	}

	tasks := []pipeline.Task{
		{
			Name: "parse_contract",
			Description: "Analyze the following contract for the user {user_email}.\n\n" +
				"Contract text:\n{contract_text}\n\n" +
				"1. Identify and label key clauses like confidentiality, termination, payment, and liability.\n" +
				"2. If a company or organization name is present (e.g. 'This agreement is between X and Y'), " +
				"extract the main company name and store it as `company_name`; otherwise use an empty string.\n" +
				"3. Return a structured JSON containing `clauses`, `summaries`, and `company_name`.",
			ExpectedOutput: "A structured list of contract clauses with labels and short summaries for each section, " +
				"plus a 'company_name' field containing the main company mentioned.",
			Agent: researcher,
		},
		{
			Name: "analyze_risks",
			Description: "Review the parsed clauses and assess each for potential risks, unfair terms, or ambiguity. " +
				"If uncertain, note where clarification is needed.",
			ExpectedOutput: "A risk report listing each clause, its risk level (Low/Medium/High), and explanations.",
			Agent:          riskAnalyzer,
		},
		{
			Name: "research_clarifications",
			Description: "Search the internet for definitions, precedents, or explanations about unclear terms. " +
				"Summarize findings and cite at least one credible source. " +
				"ONLY research if the contract has unclear perpetual rights or unusual clauses. " +
				"Otherwise: 'No research needed'.",
			ExpectedOutput: "Brief research or 'No research needed'.",
			Agent:          legalResearcher,
		},
		{
			Name: "summarize_for_user",
			Description: "Summarize the analysis for the user in plain English. Include risks, key terms, " +
				"and disclaimers that this is not legal advice.",
			ExpectedOutput: "A markdown-formatted report containing:\n" +
				"- A summary of the contract\n" +
				"- A list of flagged clauses and risks\n" +
				"- Any important dates or actions they should be aware of to avoid or take\n" +
				"- Plain-English explanations\n" +
				"- A disclaimer at the end",
			Agent:      userAdvocate,
			OutputFile: SummaryArtifact,
		},
	}

	return pipeline.NewCrew("legal", tasks, provider, artifactDir)
}

func buildCreatorCrew(provider llm.LLMProvider, searchTool pipeline.Tool, artifactDir string) *pipeline.Crew {
	parser := &pipeline.Agent{
		Role: "Brand Deal Contract Parser",
		Goal: "Parse brand-deal contracts between company and social media creator. Do not make up information " +
			"that is not within the text. Identify deliverables, due dates, payment terms, ownership/licensing " +
			"terms, exclusivity, royalties, usage rights, and any clauses that impose ongoing obligations or " +
			"risks for the creator.",
		Backstory: "You are an expert in influencer/brand agreements and content production contracts. You know " +
			"common language used for deliverables, timelines, approval flows, payment schedules, exclusivity, " +
			"content ownership, licensing, attribution, moral clauses, and termination/kill fees. Produce " +
			"structured outputs that downstream agents can consume.",
	}

	riskAnalyzer := &pipeline.Agent{
		Role: "Brand Deal Risk & Rights Analyst",
		Goal: "Identify and evaluate legal and business risks within influencer-brand contracts. Highlight clauses " +
			"that could negatively impact the creator's rights, revenue, or creative control. Do not make up " +
			"information that is not within the text.",
		Backstory: "You are an experienced contract reviewer specializing in influencer marketing and brand " +
			"partnerships. You understand common risks such as content ownership, exclusivity, perpetual usage " +
			"rights, royalty clauses, and unfair deliverable obligations.",
	}

	researcher := &pipeline.Agent{
		Role: "Influencer Contract Legal Researcher",
		Goal: "Retrieve and summarize up-to-date, relevant legal and business information about influencer-brand " +
			"contracts, including usage rights, ownership, FTC disclosure laws, and fair compensation standards. " +
			"Do not make up information that is not within the text.",
		Backstory: "You are an expert legal researcher specializing in influencer marketing, digital rights, and " +
			"brand deal compliance. You can find relevant definitions, legal precedents, or best practices to " +
			"clarify contract terms.",
		Tool: searchTool,
	}

	advocate := &pipeline.Agent{
		Role: "Influencer Contract Advisor",
		Goal: "Explain the influencer-brand contract in simple, creator-friendly language, highlighting what " +
			"actions the creator needs to take, what rights they may be giving up, and any important due dates " +
			"or red flags. Do not make up information that is not within the text.",
		Backstory: "You are an empathetic and knowledgeable contract explainer who helps social media creators " +
			"understand their brand deals. You clearly outline deliverables, due dates, payment structure, and " +
			"potential legal risks in a way that's informative but not legal advice.",
	}

	tasks := []pipeline.Task{
		{
			Name: "parse_contract",
			Description: "Analyze the following brand-deal contract for the user {user_email}.\n\n" +
				"Do NOT fabricate or infer information that is not explicitly stated in the contract text. " +
				"If a section or detail is missing, leave it empty or omit it.\n\n" +
				"Contract text:\n{contract_text}\n\n" +
				"Identify and label key sections and clauses, focusing on: deliverables (format, platform, " +
				"quantity), due dates per deliverable, payment terms, ownership & licensing, exclusivity, " +
				"royalties, usage rights, approval process, termination and penalties, confidentiality, " +
				"indemnity, and acceptance criteria. Normalize all dates to ISO 8601 in Pacific time and " +
				"associate each with its deliverable. Extract the primary company/brand name as `company_name`.\n\n" +
				"Produce a valid JSON object containing `deliverables`, `dates`, `legal_flags`, `clauses`, " +
				"`company_name`, and `plain_english_summary` with no commentary.",
			ExpectedOutput: "A JSON object with keys deliverables, dates, legal_flags, clauses, company_name, " +
				"plain_english_summary (omit or leave empty if not applicable).",
			Agent: parser,
		},
		{
			Name: "analyze_risks",
			Description: "Examine the structured contract clauses produced by the previous step. Do not make up " +
				"information that is not within the contract text. For each clause, assess potential risks to " +
				"the creator: ownership & usage rights, exclusivity, approval & revisions, royalties or " +
				"compensation, termination or liability. Rate each clause Low, Medium, or High risk with a " +
				"brief reason.",
			ExpectedOutput: "A JSON object containing a list of clauses with `clause_title`, `risk_level`, " +
				"`risk_reason`, and optional `recommendation`.",
			Agent: riskAnalyzer,
		},
		{
			Name: "research_clarifications",
			Description: "Search the internet for definitions or real-world context for unclear or risky terms in " +
				"the contract, particularly content ownership, whitelisting, exclusivity, royalties, FTC " +
				"disclosure, and creator compensation norms. Cite at least one credible source.",
			ExpectedOutput: "A paragraph or short list summarizing findings with one or more cited sources.",
			Agent:          researcher,
		},
		{
			Name: "extract_deliverables",
			Description: "From the parsed contract, produce the list of dated deliverables to place on the " +
				"creator's calendar. Include ONLY deliverables with an explicit due date in the contract. " +
				"For each, output: summary (short title), description, start_date (YYYY-MM-DD), start_time " +
				"(HH:MM, only if stated), timezone (IANA name, only if stated), user_email ({user_email}). " +
				"Output a valid JSON array, nothing else. Output [] if there are none.",
			ExpectedOutput: "A JSON array of objects with keys summary, description, start_date, start_time, " +
				"timezone, user_email.",
			Agent:      parser,
			OutputFile: DeliverablesArtifact,
		},
		{
			Name: "summarize_for_user",
			Description: "Using the parsed clauses and risk analysis, write a concise, friendly summary for the " +
				"creator who received this brand deal. Do not make up information that is not within the " +
				"contract text. Cover: an overview of the partnership, deliverables with deadlines, payment " +
				"terms, key legal or business risks (ownership, exclusivity, whitelisting, royalties, FTC " +
				"disclosure), and actionable plain-English recommendations. End with a clear disclaimer that " +
				"this is not legal advice.",
			ExpectedOutput: "A markdown-formatted report with sections:\n" +
				"## Brand Deal Summary\n## Deliverables & Deadlines\n## Payment Terms\n" +
				"## Legal & Risk Concerns\n## Actionable Tips for the Creator\n" +
				"### Disclaimer: This summary is for informational purposes only and not legal advice.",
			Agent:      advocate,
			OutputFile: SummaryArtifact,
		},
	}

	return pipeline.NewCrew("creator", tasks, provider, artifactDir)
}
