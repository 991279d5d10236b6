package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const (
	forumNotFound = "forum not found"
	postNotFound  = "post not found"
)

const forumColumns = `id, name, description, created_by, moderators, members, created_at, updated_at`

const postColumns = `id, forum_id, title, content, created_by, upvotes, downvotes, created_at, updated_at`

// ForumRepository handles database operations for forums and their posts.
type ForumRepository struct {
	db *sql.DB
}

// NewForumRepository creates a new ForumRepository.
func NewForumRepository(db *sql.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

func scanForum(row scanner) (*models.Forum, error) {
	var f models.Forum
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &f.CreatedBy, pq.Array(&f.Moderators),
		pq.Array(&f.Members), &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Moderators = nonNil(f.Moderators)
	f.Members = nonNil(f.Members)
	return &f, nil
}

func scanPost(row scanner) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.ForumID, &p.Title, &p.Content, &p.CreatedBy, pq.Array(&p.Upvotes),
		pq.Array(&p.Downvotes), &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Upvotes = nonNil(p.Upvotes)
	p.Downvotes = nonNil(p.Downvotes)
	return &p, nil
}

// CreateForum inserts a forum; the creator becomes its first moderator and member.
func (r *ForumRepository) CreateForum(ctx context.Context, f *models.Forum) error {
	f.ID = newID()
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	f.Moderators = []string{f.CreatedBy}
	f.Members = []string{f.CreatedBy}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO forums (id, name, description, created_by, moderators, members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, f.ID, f.Name, f.Description, f.CreatedBy, pq.Array(f.Moderators), pq.Array(f.Members), now, now)
	return translate(err, forumNotFound)
}

func (r *ForumRepository) GetForum(ctx context.Context, id string) (*models.Forum, error) {
	f, err := scanForum(r.db.QueryRowContext(ctx, `SELECT `+forumColumns+` FROM forums WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, forumNotFound)
	}
	return f, nil
}

func (r *ForumRepository) ListForums(ctx context.Context) ([]models.Forum, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+forumColumns+` FROM forums ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list forums: %w", err)
	}
	defer rows.Close()

	forums := make([]models.Forum, 0)
	for rows.Next() {
		f, err := scanForum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forum: %w", err)
		}
		forums = append(forums, *f)
	}
	return forums, rows.Err()
}

func (r *ForumRepository) UpdateForum(ctx context.Context, id string, p models.ForumPatch) (*models.Forum, error) {
	var b updateBuilder
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Description != nil {
		b.set("description", *p.Description)
	}
	if b.empty() {
		return r.GetForum(ctx, id)
	}

	query, args := b.build("forums", id, "updated_at = NOW()")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, forumNotFound)
	}
	if err := expectAffected(res, forumNotFound); err != nil {
		return nil, err
	}
	return r.GetForum(ctx, id)
}

// DeleteForum removes a forum and, by cascade, its posts.
func (r *ForumRepository) DeleteForum(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forums WHERE id = $1`, id)
	if err != nil {
		return translate(err, forumNotFound)
	}
	return expectAffected(res, forumNotFound)
}

// AddMember joins userID to the forum once.
func (r *ForumRepository) AddMember(ctx context.Context, id, userID string) (*models.Forum, error) {
	f, err := scanForum(r.db.QueryRowContext(ctx, `
		UPDATE forums
		SET members = CASE WHEN $2 = ANY(members) THEN members ELSE array_append(members, $2) END
		WHERE id = $1
		RETURNING `+forumColumns, id, userID))
	if err != nil {
		return nil, translate(err, forumNotFound)
	}
	return f, nil
}

// RemoveMember removes userID from the forum.
func (r *ForumRepository) RemoveMember(ctx context.Context, id, userID string) (*models.Forum, error) {
	f, err := scanForum(r.db.QueryRowContext(ctx, `
		UPDATE forums SET members = array_remove(members, $2) WHERE id = $1
		RETURNING `+forumColumns, id, userID))
	if err != nil {
		return nil, translate(err, forumNotFound)
	}
	return f, nil
}

// CreatePost inserts a post into an existing forum.
func (r *ForumRepository) CreatePost(ctx context.Context, p *models.Post) error {
	p.ID = newID()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Upvotes, p.Downvotes = []string{}, []string{}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, forum_id, title, content, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.ForumID, p.Title, p.Content, p.CreatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPost returns a post that belongs to forumID.
func (r *ForumRepository) GetPost(ctx context.Context, forumID, postID string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `
		SELECT `+postColumns+` FROM posts WHERE id = $1 AND forum_id = $2
	`, postID, forumID))
	if err != nil {
		return nil, translate(err, postNotFound)
	}
	return p, nil
}

func (r *ForumRepository) ListPosts(ctx context.Context, forumID string) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts WHERE forum_id = $1 ORDER BY created_at DESC, id
	`, forumID)
	if err != nil {
		return nil, translate(err, forumNotFound)
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *ForumRepository) UpdatePost(ctx context.Context, postID string, p models.PostPatch) error {
	var b updateBuilder
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Content != nil {
		b.set("content", *p.Content)
	}
	if b.empty() {
		return nil
	}

	query, args := b.build("posts", postID, "updated_at = NOW()")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate(err, postNotFound)
	}
	return expectAffected(res, postNotFound)
}

func (r *ForumRepository) DeletePost(ctx context.Context, postID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return translate(err, postNotFound)
	}
	return expectAffected(res, postNotFound)
}

// Vote records an up or down vote. A user appears in at most one of the two
// arrays: voting one way withdraws any vote the other way.
func (r *ForumRepository) Vote(ctx context.Context, postID, userID, direction string) (*models.Post, error) {
	add, remove := "upvotes", "downvotes"
	if direction == models.VoteDown {
		add, remove = remove, add
	}
	p, err := scanPost(r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE posts
		SET %[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END,
			%[2]s = array_remove(%[2]s, $2)
		WHERE id = $1
		RETURNING `+postColumns, add, remove), postID, userID))
	if err != nil {
		return nil, translate(err, postNotFound)
	}
	return p, nil
}
