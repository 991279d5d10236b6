package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"movie-recommendation-service/internal/models"
)

const articleNotFound = "article not found"

const articleColumns = `id, title, content, category, tags, author_id, published_at, cover_image,
	views, is_published, created_at, updated_at`

// ArticleRepository handles database operations for editorial articles.
type ArticleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func scanArticle(row scanner) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Category, pq.Array(&a.Tags), &a.AuthorID,
		&a.PublishedAt, &a.CoverImage, &a.Views, &a.IsPublished, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Tags = nonNil(a.Tags)
	return &a, nil
}

func (r *ArticleRepository) page(ctx context.Context, where string, args []interface{}, page, limit int) (*models.ArticleListResponse, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY published_at DESC, id LIMIT $%d OFFSET $%d`,
		articleColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset(page, limit))...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]models.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &models.ArticleListResponse{Data: articles, Pagination: models.NewPagination(total, page, limit)}, nil
}

// Create inserts an article and fills in its ID.
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) error {
	a.ID = newID()
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	a.Tags = nonNil(a.Tags)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (id, title, content, category, tags, author_id, published_at,
			cover_image, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, a.ID, a.Title, a.Content, a.Category, pq.Array(a.Tags), a.AuthorID, a.PublishedAt,
		a.CoverImage, a.IsPublished, now, now)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, articleNotFound)
	}
	return a, nil
}

// List returns published articles filtered by category and tags, newest first.
func (r *ArticleRepository) List(ctx context.Context, p models.ArticleListParams) (*models.ArticleListResponse, error) {
	conditions := []string{"is_published"}
	var args []interface{}
	if p.Category != "" {
		args = append(args, p.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(p.Tags) > 0 {
		args = append(args, pq.Array(p.Tags))
		conditions = append(conditions, fmt.Sprintf("tags && $%d", len(args)))
	}
	return r.page(ctx, strings.Join(conditions, " AND "), args, p.Page, p.Limit)
}

// Search matches query case-insensitively against title and content.
func (r *ArticleRepository) Search(ctx context.Context, query string, page, limit int) (*models.ArticleListResponse, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.page(ctx, `is_published AND (title ILIKE $1 OR content ILIKE $1)`, []interface{}{pattern}, page, limit)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ArticleRepository) Update(ctx context.Context, id string, p models.ArticlePatch) (*models.Article, error) {
	var b updateBuilder
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Content != nil {
		b.set("content", *p.Content)
	}
	if p.Category != nil {
		b.set("category", *p.Category)
	}
	if p.Tags != nil {
		b.set("tags", pq.Array(nonNil(*p.Tags)))
	}
	if p.CoverImage != nil {
		b.set("cover_image", *p.CoverImage)
	}
	if p.IsPublished != nil {
		b.set("is_published", *p.IsPublished)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := b.build("articles", id, "updated_at = NOW()")
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, articleNotFound)
	}
	if err := expectAffected(res, articleNotFound); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return translate(err, articleNotFound)
	}
	return expectAffected(res, articleNotFound)
}

// IncrementViews bumps the view counter and returns the new value.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	var views int
	err := r.db.QueryRowContext(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		return 0, translate(err, articleNotFound)
	}
	return views, nil
}
