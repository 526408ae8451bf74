package repository

const (
	createJobQuery = `INSERT INTO caption_jobs (job_id, status, original_file_name)
					VALUES ($1, $2, $3) RETURNING *`
	getJobByIDQuery = `SELECT job_id, status, original_file_name, captioned_video_path, error_message, created_at, completed_at
					FROM caption_jobs WHERE job_id = $1`
	updateJobQuery = `UPDATE caption_jobs
					SET status = $1,
					    captioned_video_path = $2,
					    error_message = $3,
					    completed_at = $4
					WHERE job_id = $5 RETURNING *`
)
