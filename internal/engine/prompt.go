package engine

// LLM prompt templates: data only, no logic.

// summarySystemPrompt frames the collaborator for timestamped transcripts.
const summarySystemPrompt = `You summarize video transcripts. Each transcript line starts with a [M:SS] or [H:MM:SS] timestamp marking where that passage begins in the video.`

// summaryPrompt asks for a summary of one transcript.
// Args: title, focus section (may be empty), transcript.
const summaryPrompt = `Summarize the video below.

Title: %s
%s
Rules:
- Start with a 2-3 sentence overview.
- Then list the key points in order, each prefixed with the [timestamp] of the passage it comes from, copied exactly from the transcript.
- Answer in the same language as the transcript.
- Do NOT invent anything that is not in the transcript.

Transcript:
%s`

// summaryFocusLine is inserted when the caller asks for a focus.
// Args: focus.
const summaryFocusLine = "Focus on: %s\n"
