// Package httpadapter translates between the feed service's wire DTOs and
// its application layer.
package httpadapter

import (
	"context"
	"log/slog"

	"postline/contexts/content/feed-service/application"
	"postline/contexts/content/feed-service/domain/entities"
	"postline/contexts/content/feed-service/ports"
	transporthttp "postline/contexts/content/feed-service/transport/http"
	"postline/contracts/session"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func toTransportPost(post entities.Post) transporthttp.Post {
	return transporthttp.Post{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		ContentHTML: renderContentHTML(post.Content),
		ImagePath:   post.ImagePath,
		OwnerID:     post.OwnerID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func (h Handler) CreatePostHandler(ctx context.Context, sctx session.Context, req transporthttp.CreatePostRequest) (transporthttp.PostResponse, error) {
	post, err := h.Service.CreatePost(ctx, sctx, req.Title, req.Content, req.ImagePath)
	if err != nil {
		return transporthttp.PostResponse{}, err
	}
	return transporthttp.PostResponse{Status: "success", Data: toTransportPost(post)}, nil
}

func (h Handler) GetPostHandler(ctx context.Context, sctx session.Context, postID string) (transporthttp.PostResponse, error) {
	post, err := h.Service.GetPost(ctx, sctx, postID)
	if err != nil {
		return transporthttp.PostResponse{}, err
	}
	return transporthttp.PostResponse{Status: "success", Data: toTransportPost(post)}, nil
}

func (h Handler) ListPostsHandler(ctx context.Context, sctx session.Context, page int) (transporthttp.ListPostsResponse, error) {
	result, err := h.Service.ListPosts(ctx, sctx, page)
	if err != nil {
		return transporthttp.ListPostsResponse{}, err
	}

	resp := transporthttp.ListPostsResponse{Status: "success"}
	resp.Data.Posts = make([]transporthttp.Post, len(result.Posts))
	for i, post := range result.Posts {
		resp.Data.Posts[i] = toTransportPost(post)
	}
	resp.Data.TotalPosts = result.TotalPosts
	return resp, nil
}

func (h Handler) UpdatePostHandler(ctx context.Context, sctx session.Context, postID string, req transporthttp.UpdatePostRequest) (transporthttp.PostResponse, error) {
	patch := ports.KeepImage()
	if req.ImagePath != nil {
		if *req.ImagePath == "" {
			patch = ports.ClearImage()
		} else {
			patch = ports.SetImage(*req.ImagePath)
		}
	}

	post, err := h.Service.UpdatePost(ctx, sctx, postID, req.Title, req.Content, patch)
	if err != nil {
		return transporthttp.PostResponse{}, err
	}
	return transporthttp.PostResponse{Status: "success", Data: toTransportPost(post)}, nil
}

func (h Handler) DeletePostHandler(ctx context.Context, sctx session.Context, postID string) (transporthttp.DeletePostResponse, error) {
	if err := h.Service.DeletePost(ctx, sctx, postID); err != nil {
		return transporthttp.DeletePostResponse{}, err
	}
	resp := transporthttp.DeletePostResponse{Status: "success"}
	resp.Data.PostID = postID
	return resp, nil
}

func (h Handler) UploadImageHandler(ctx context.Context, sctx session.Context, content []byte) (transporthttp.UploadImageResponse, error) {
	path, err := h.Service.UploadImage(ctx, sctx, content)
	if err != nil {
		return transporthttp.UploadImageResponse{}, err
	}
	resp := transporthttp.UploadImageResponse{Status: "success"}
	resp.Data.FilePath = path
	resp.Data.Message = "File stored"
	return resp, nil
}
