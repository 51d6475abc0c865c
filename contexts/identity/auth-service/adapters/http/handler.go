package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"postline/contexts/identity/auth-service/application"
	httptransport "postline/contexts/identity/auth-service/transport/http"
	"postline/contracts/session"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) SignupHandler(ctx context.Context, req httptransport.SignupRequest) (httptransport.SignupResponse, error) {
	user, err := h.Service.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return httptransport.SignupResponse{}, err
	}
	resp := httptransport.SignupResponse{Status: "success"}
	resp.Data.UserID = user.ID
	resp.Data.Email = user.Email
	resp.Data.Name = user.Name
	return resp, nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	auth, err := h.Service.Login(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	resp := httptransport.LoginResponse{Status: "success"}
	resp.Data.Token = auth.Token
	resp.Data.UserID = auth.UserID
	return resp, nil
}

func (h Handler) GetStatusHandler(ctx context.Context, sctx session.Context) (httptransport.StatusResponse, error) {
	status, err := h.Service.GetStatus(ctx, sctx)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	resp := httptransport.StatusResponse{Status: "success"}
	resp.Data.UserStatus = status
	return resp, nil
}

func (h Handler) UpdateStatusHandler(ctx context.Context, sctx session.Context, req httptransport.UpdateStatusRequest) (httptransport.StatusResponse, error) {
	user, err := h.Service.UpdateStatus(ctx, sctx, req.Status)
	if err != nil {
		return httptransport.StatusResponse{}, err
	}
	resp := httptransport.StatusResponse{Status: "success"}
	resp.Data.UserStatus = user.Status
	return resp, nil
}
