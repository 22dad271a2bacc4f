package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"social_chat_service/internal/member/domain"
)

type postgresMemberRepository struct {
	db *pgxpool.Pool
}

// NewPostgresMemberRepository create a MemberRepository backed by postgresql
func NewPostgresMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) CreateUser(ctx context.Context, member domain.Member) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO member(member_id, username, email, phone, password, status) VALUES ($1, $2, $3, $4, $5, $6)",
		member.MemberID, member.Username, member.Email, member.Phone, member.Password, member.Status)
	return err
}

func (r *postgresMemberRepository) FindByMember(ctx context.Context, q domain.MemberQuery) (*domain.Member, error) {
	queryStr := "SELECT id, member_id, username, email, phone, password, status FROM member WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if q.MemberID != nil {
		queryStr += fmt.Sprintf(" AND member_id = $%d", paramCount)
		params = append(params, *q.MemberID)
		paramCount++
	}
	if q.Username != nil {
		queryStr += fmt.Sprintf(" AND username = $%d", paramCount)
		params = append(params, *q.Username)
		paramCount++
	}
	if q.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *q.Email)
		paramCount++
	}
	if q.Phone != nil {
		queryStr += fmt.Sprintf(" AND phone = $%d", paramCount)
		params = append(params, *q.Phone)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	return scanMember(row)
}

func (r *postgresMemberRepository) FindByLoginContact(ctx context.Context, contact string) (*domain.Member, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, member_id, username, email, phone, password, status FROM member WHERE email = $1 OR username = $1 OR phone = $1",
		contact)
	return scanMember(row)
}

func (r *postgresMemberRepository) SearchByUsername(ctx context.Context, query string) ([]domain.Member, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, member_id, username, email, phone, password, status FROM member WHERE username ILIKE '%' || $1 || '%' ORDER BY username",
		query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.MemberID, &m.Username, &m.Email, &m.Phone, &m.Password, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresMemberRepository) UpdateMemberStatus(ctx context.Context, memberID string, status domain.MemberStatus) error {
	_, err := r.db.Exec(ctx,
		"UPDATE member SET status = $1 WHERE member_id = $2", status, memberID)
	return err
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.MemberID, &m.Username, &m.Email, &m.Phone, &m.Password, &m.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &m, nil
}
