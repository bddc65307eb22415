// Package translation turns English vocabulary text into Spanish. It holds the
// fixed part-of-speech table, the pluggable machine translation backends
// (Google, OpenAI, Gemini), a circuit breaker and caches around them, and the
// fail-soft Translator that the enrichment pass calls.
package translation
