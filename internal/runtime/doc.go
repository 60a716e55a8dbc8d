/*
Package runtime implements the dialogue state machine that resolves one utterance per turn.

Rules are evaluated in a fixed order and the first match wins:

 1. Greeting
 2. Focused entity: "change college" resets, anything else is an attribute question
 3. Entity identification by name
 4. "list colleges" prompts for a location
 5. Location answer (single use)
 6. "compare" prompts for two names
 7. Comparison pair answer (single use)
 8. Fallback

While an entity is focused, list and compare triggers are not recognized until the focus
is reset.
*/
package runtime
