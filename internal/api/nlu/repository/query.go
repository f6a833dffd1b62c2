package nluRepository

const (
	queryCreateUtterance = `
		INSERT INTO nlu_utterances (
			id,
			request_id,
			turn,
			message,
			intent,
			confidence,
			source,
			slots,
			missing_slots,
			followup_question,
			created_at
		) VALUES (
			:id,
			:request_id,
			:turn,
			:message,
			:intent,
			:confidence,
			:source,
			:slots,
			:missing_slots,
			:followup_question,
			:created_at
		)
	`

	queryListUtterances = `
		SELECT
			id,
			request_id,
			turn,
			message,
			intent,
			confidence,
			source,
			slots,
			missing_slots,
			followup_question,
			created_at
		FROM nlu_utterances
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountUtterances = `
		SELECT COUNT(*)
		FROM nlu_utterances
	`
)
