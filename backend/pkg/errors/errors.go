package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrStoreUnavailable 数据库查询失败（连接中断、超时、SQL 错误等）
var ErrStoreUnavailable = errors.New("课程目录数据暂不可用")

// PostgreSQL 错误码
const (
	PgUndefinedColumn   = "42703"
	PgUndefinedFunction = "42883"
	PgUniqueViolation   = "23505"
)

// WrapStore 为存储层错误附加 ErrStoreUnavailable 标记，保留原始错误链
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// PgCode 提取 PostgreSQL 错误码，非 PostgreSQL 错误返回空串
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsFullTextUnavailable 全文检索列或函数不存在（旧库未迁移 search_vector）
func IsFullTextUnavailable(err error) bool {
	switch PgCode(err) {
	case PgUndefinedColumn, PgUndefinedFunction:
		return true
	}
	return false
}
