package repository

const (
	createTranscriptionQuery = `INSERT INTO transcriptions (original_file_name, plain_text, srt_content)
					VALUES ($1, $2, $3) RETURNING *`
	getTotalTranscriptionsQuery = `SELECT COUNT(id) FROM transcriptions`
	getTranscriptionsQuery      = `SELECT id, original_file_name, plain_text, srt_content, created_at FROM transcriptions
					ORDER BY created_at DESC OFFSET $1 LIMIT $2`
)
