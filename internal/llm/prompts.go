package llm

const bioPrompt = `
You are an expert career writer. Write a professional bio for a job seeker based on the resume below.

### INSTRUCTIONS:
1. Write in the first person, 80 to 120 words, one paragraph.
2. Lead with the candidate's strongest experience and skills.
3. Reflect the preferences below when they are specified.
4. Use only facts from the resume. Do not invent employers, titles, dates or skills.
5. Return the bio text only: no headings, no markdown, no quotes.

### PREFERENCES:
Work style: %s
Industry: %s
Location: %s

### RESUME:
%s
`

const extractionPrompt = `
Transcribe the attached resume into plain text.

### INSTRUCTIONS:
1. Keep every section, heading, date and bullet in reading order.
2. Drop page numbers, headers and footers that repeat on each page.
3. Do not summarize, rephrase or add anything.
4. Return plain text only, without markdown code blocks.
`
