package usecase

// Drafting prompts. Both instruct the model to answer as JSON; parse
// failures fall back to the raw completion text with lowered confidence.

const responseGenerationPrompt = `Generate a professional guest response. Be concise (1-2 sentences).

Guest: %GUEST_MESSAGE%

Templates: %TEMPLATES%

Property: %PROPERTY_INFO%
Reservation: %RESERVATION_INFO%

Rules:
- Use template if similarity > 0.75
- Only use provided info, no guest names/contact info
- Only mention amenities if asked

JSON:
{
    "response_type": "template" | "custom",
    "response_text": "your brief response",
    "confidence_score": 0.0-1.0,
    "reasoning": "brief"
}`

const customResponsePrompt = `IMPORTANT: Respond in 1-2 sentences maximum. Be direct and concise.

Guest: %GUEST_MESSAGE%

Property: %PROPERTY_INFO%
Reservation: %RESERVATION_INFO%

Rules: Professional, concise. Only use provided info. No guest names/contact info.

JSON:
{
    "response_text": "your 1-2 sentence response"
}`
