package classifier

import "fmt"

const systemPrompt = `You are a helpful assistant designed to output JSON and your purpose is to decide the industry of the given company name.
If you do not recognize the company or it is ambiguous, do not guess. Instead ask for a web search by returning:
{"search_api": "<search query that would identify the company's business>"}
Otherwise return the NAICS code.`

const userPromptTemplate = `I will give you the name of the company and you will decide the NAICS code id it belongs to, with its description.
Please return the result in the following format, do not include any explanations:
{
"NAICS_code": "NAICS code",
"description": "description of NAICS code"
}
Utilize your expertise to generate the most pertinent information.
Company Name: "Sony"
Response: {"NAICS_code": "334610", "description": "Manufacturing and Reproducing Magnetic and Optical Media"}
Company Name: %s
`

func userPrompt(company, searchContext string) string {
	p := fmt.Sprintf(userPromptTemplate, company)
	if searchContext != "" {
		p += "\nContext: " + searchContext
	}
	return p
}
