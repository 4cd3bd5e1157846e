// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"github.com/google/uuid"

	"quillpress/internal/models"
)

// ReferencedIDs collects the distinct user ids (authors and commenters)
// and category ids referenced by posts, in first-seen order.
func ReferencedIDs(posts []models.Post) (userIDs, categoryIDs []uuid.UUID) {
	seenUsers := make(map[uuid.UUID]bool)
	seenCats := make(map[uuid.UUID]bool)

	addUser := func(id uuid.UUID) {
		if !seenUsers[id] {
			seenUsers[id] = true
			userIDs = append(userIDs, id)
		}
	}

	for _, p := range posts {
		if p.AuthorID != nil {
			addUser(*p.AuthorID)
		}
		if p.CategoryID != nil && !seenCats[*p.CategoryID] {
			seenCats[*p.CategoryID] = true
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
		for _, c := range p.Comments {
			addUser(c.UserID)
		}
	}
	return userIDs, categoryIDs
}

// JoinPosts is the read-side join: it replaces author, category and
// comment-author references with their summaries. References missing from
// the maps (deleted rows) become nil rather than failing the read.
func JoinPosts(posts []models.Post, users map[uuid.UUID]*models.User, cats map[uuid.UUID]*models.Category) []models.PostView {
	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		v := models.PostView{
			ID:          p.ID,
			Title:       p.Title,
			Content:     p.Content,
			Excerpt:     p.Excerpt,
			Tags:        p.Tags,
			IsPublished: p.IsPublished,
			ViewCount:   p.ViewCount,
			Comments:    make([]models.CommentView, 0, len(p.Comments)),
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if v.Tags == nil {
			v.Tags = models.Tags{}
		}
		if p.AuthorID != nil {
			if u, ok := users[*p.AuthorID]; ok {
				v.Author = u.Summary()
			}
		}
		if p.CategoryID != nil {
			if c, ok := cats[*p.CategoryID]; ok {
				v.Category = c.Summary()
			}
		}
		for _, c := range p.Comments {
			cv := models.CommentView{Content: c.Content, CreatedAt: c.CreatedAt}
			if u, ok := users[c.UserID]; ok {
				cv.User = u.Summary()
			}
			v.Comments = append(v.Comments, cv)
		}
		views = append(views, v)
	}
	return views
}
