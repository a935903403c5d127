package storage

const (
	// User queries
	CreateUserQuery = `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, created_at, updated_at
	`

	GetUserByUsernameQuery = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	GetUserByIDQuery = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	// Блокировка строки пользователя сериализует добавления в его журнал
	LockUserQuery = `
		SELECT id
		FROM users
		WHERE id = $1
		FOR UPDATE
	`

	// Ledger queries
	AppendTransactionQuery = `
		INSERT INTO transactions (user_id, amount)
		VALUES ($1, $2)
		RETURNING id, user_id, amount::float8, created_at
	`

	GetUserTransactionsQuery = `
		SELECT id, user_id, amount::float8, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id ASC
	`

	CountUserTransactionsQuery = `
		SELECT COUNT(*)
		FROM transactions
		WHERE user_id = $1
	`

	TransactionSummaryQuery = `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount), 0)::float8,
			COALESCE(AVG(amount), 0)::float8,
			COALESCE(MAX(amount), 0)::float8,
			COUNT(*) FILTER (WHERE amount > $2)
		FROM transactions
		WHERE user_id = $1
	`

	// Risk queries
	// Более старая оценка не перезаписывает более новую: строка не обновляется и RETURNING пуст
	UpsertRiskAssessmentQuery = `
		INSERT INTO risk_assessments (
			user_id, transaction_id, phase, risk_percent, confidence_percent,
			deviation_score, mean, stddev, level, sample_size, assessed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			transaction_id     = EXCLUDED.transaction_id,
			phase              = EXCLUDED.phase,
			risk_percent       = EXCLUDED.risk_percent,
			confidence_percent = EXCLUDED.confidence_percent,
			deviation_score    = EXCLUDED.deviation_score,
			mean               = EXCLUDED.mean,
			stddev             = EXCLUDED.stddev,
			level              = EXCLUDED.level,
			sample_size        = EXCLUDED.sample_size,
			assessed_at        = EXCLUDED.assessed_at
		WHERE risk_assessments.transaction_id < EXCLUDED.transaction_id
		RETURNING assessed_at
	`

	GetRiskAssessmentQuery = `
		SELECT user_id, transaction_id, phase, risk_percent, confidence_percent,
		       deviation_score, mean, stddev, level, sample_size, assessed_at
		FROM risk_assessments
		WHERE user_id = $1
	`

	// Payment queries
	CreatePaymentRequestQuery = `
		INSERT INTO payment_requests (
			id, user_id, transaction_id, payee_vpa, payee_name, note, amount,
			mode, upi_link, risk_phase, risk_percent, risk_level, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	GetPaymentRequestQuery = `
		SELECT id, user_id, transaction_id, payee_vpa, payee_name, note, amount::float8,
		       mode, upi_link, risk_phase, risk_percent, risk_level, status, created_at
		FROM payment_requests
		WHERE id = $1 AND user_id = $2
	`

	ListPaymentRequestsQuery = `
		SELECT id, user_id, transaction_id, payee_vpa, payee_name, note, amount::float8,
		       mode, upi_link, risk_phase, risk_percent, risk_level, status, created_at
		FROM payment_requests
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`
)
