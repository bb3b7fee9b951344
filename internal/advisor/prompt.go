package advisor

import (
	"fmt"

	"github.com/filamentgenius/backend/internal/knowledge"
	"github.com/filamentgenius/backend/internal/model"
)

// systemInstruction is the shared persona prompt for both entry points.
var systemInstruction = fmt.Sprintf(`
You are "Filament Genius", an expert AI assistant for 3D printing enthusiasts.
Your goal is to recommend the perfect 3D printing filament based on user needs.

# KNOWLEDGE BASE
You have access to the following internal knowledge base. Use this information to prioritize your recommendations and answers.
%s

# GUIDELINES
- You must be knowledgeable about materials like PLA, PETG, ABS, ASA, TPU, Nylon, PC, and CF blends.
- You have a modern, smart, and helpful personality.
- CRITICAL: When recommending specific products, you MUST ensure they are likely available on "3dprintergear.com.au".
- You should construct valid URLs pointing to that domain if possible, or a search link if unsure.
`, knowledge.Base)

// chatInstruction adds the conversational-mode tuning.
const chatInstruction = " In chat mode, keep answers concise and conversational. If listing products, format them nicely with Markdown."

// recommendPrompt renders the structured-generation prompt for a submission.
func recommendPrompt(q model.QuestionnaireSubmission) string {
	return fmt.Sprintf(`
Based on the following user requirements, recommend 2-3 specific 3D printing filaments available in Australia.

User Profile:
- Application/Use Case: %s
- Printer Configuration: %s
- Experience Level: %s
- Desired Aesthetic: %s
- Budget Tier: %s

Instructions:
1. Select exactly one recommendation as the "Top Pick" (isTopPick: true) that best fits the user's needs.
2. Provide detailed technical specifications for each (Nozzle Temp, Bed Temp, Nozzle Type).
3. Ensure product URLs point to 3dprintergear.com.au.

Provide the output as a JSON array.
`, q.Application, q.PrinterType, q.ExperienceLevel, q.Aesthetic, q.Budget)
}

// recommendationSchema is the response shape requested from the provider.
func recommendationSchema() *Schema {
	return &Schema{
		Type: TypeArray,
		Items: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"name":          {Type: TypeString, Description: "Specific product name (e.g. PolyLite PLA)"},
				"brand":         {Type: TypeString, Description: "Brand name (e.g. Polymaker, eSun)"},
				"material":      {Type: TypeString, Description: "Material type (e.g. PLA, PETG)"},
				"reason":        {Type: TypeString, Description: "Why this is a good fit for the user based on the Knowledge Base"},
				"priceEstimate": {Type: TypeString, Description: "Estimated price in AUD"},
				"productUrl":    {Type: TypeString, Description: "URL to buy on 3dprintergear.com.au"},
				"isTopPick":     {Type: TypeBoolean, Description: "Set to true for the single best recommendation."},
				"technicalSpecs": {
					Type: TypeObject,
					Properties: map[string]*Schema{
						"nozzleTemp": {Type: TypeString, Description: "e.g. 200-220C"},
						"bedTemp":    {Type: TypeString, Description: "e.g. 60C or 'Not Required'"},
						"nozzleType": {Type: TypeString, Description: "e.g. Brass, Hardened Steel"},
						"notes":      {Type: TypeString, Description: "Any special reqs like 'Enclosure needed' or 'Dry box'"},
					},
					Required: []string{"nozzleTemp", "bedTemp", "nozzleType"},
				},
			},
			Required: []string{"name", "brand", "material", "reason", "priceEstimate", "productUrl", "isTopPick", "technicalSpecs"},
		},
	}
}
