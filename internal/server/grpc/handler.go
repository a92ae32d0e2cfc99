package grpc

import (
	"context"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/karma"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/services"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "user_id", user.ID)
	return &api.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *emptypb.Empty) (*api.ProfileResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	view, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ProfileResponse{
		UserID:      view.Profile.UserID,
		Username:    view.Profile.UserName,
		Karma:       view.Standing.Score,
		Tier:        string(view.Standing.Tier),
		NextTier:    string(view.Standing.NextTier),
		ToNext:      view.Standing.ToNext,
		IsAdmin:     view.Profile.IsAdmin,
		Permissions: []string{},
		Events:      make([]api.KarmaEvent, 0, len(view.Events)),
	}
	for _, p := range karma.Granted(view.Standing.Tier, view.Profile.IsAdmin) {
		resp.Permissions = append(resp.Permissions, string(p))
	}
	for _, ev := range view.Events {
		resp.Events = append(resp.Events, api.KarmaEvent{
			Delta: ev.Delta, Reason: ev.Reason, RefType: ev.RefType, RefID: ev.RefID, CreatedAt: ev.CreatedAt,
		})
	}
	return resp, nil
}

func (s *GRPCServer) BrowseVault(ctx context.Context, req *api.BrowseVaultRequest) (*api.BrowseVaultResponse, error) {
	page, urls, err := s.vault.Browse(ctx, req.Offset, req.Filters)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.BrowseVaultResponse{
		Items:      itemViews(page.Items, urls),
		TotalCount: page.TotalCount,
		HasMore:    page.HasMore,
		NextOffset: page.NextOffset,
	}, nil
}

func (s *GRPCServer) GetItem(ctx context.Context, req *api.GetItemRequest) (*api.ItemView, error) {
	item, url, err := s.vault.GetItem(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ItemView{Item: *item, ImageURL: url}, nil
}

func (s *GRPCServer) SubmitItem(ctx context.Context, req *api.SubmitItemRequest) (*api.SubmitItemResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	item, task, err := s.vault.Submit(ctx, userID, services.SubmitInput{
		Subject:          req.Subject,
		Brand:            req.Brand,
		Title:            req.Title,
		Category:         req.Category,
		Year:             req.Year,
		Tags:             req.Tags,
		StitchType:       req.StitchType,
		Origin:           req.Origin,
		ImageContentType: req.ImageContentType,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Item submitted", "item_id", item.ID, "user_id", userID)
	resp := &api.SubmitItemResponse{Item: api.ItemView{Item: *item}}
	if task != nil {
		resp.Upload = toImageUpload(task)
	}
	return resp, nil
}

func toImageUpload(task *models.ImageUploadTask) *api.ImageUpload {
	return &api.ImageUpload{
		ItemID:      task.ItemID,
		StorageKey:  task.StorageKey,
		URL:         task.URL,
		ContentType: task.ContentType,
		ExpiresAt:   task.ExpiresAt,
	}
}

func (s *GRPCServer) RequestImageUpload(ctx context.Context, req *api.RequestImageUploadRequest) (*api.ImageUpload, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.vault.RequestImageUpload(ctx, userID, req.ItemID, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Image upload requested", "item_id", task.ItemID, "user_id", userID)
	return toImageUpload(task), nil
}

func (s *GRPCServer) MarkImageUploaded(ctx context.Context, req *api.ItemRequest) (*api.ItemView, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.vault.MarkImageUploaded(ctx, userID, req.ItemID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ItemView{Item: *item}, nil
}

func (s *GRPCServer) VerifyItem(ctx context.Context, req *api.ItemRequest) (*api.VerifyItemResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.vault.Verify(ctx, userID, req.ItemID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.VerifyItemResponse{VerificationCount: res.VerificationCount, Verified: res.Verified}, nil
}

func (s *GRPCServer) ProposeEdit(ctx context.Context, req *api.ProposeEditRequest) (*api.EditProposal, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.edits.Propose(ctx, userID, req.ItemID, req.Fields, req.Comment)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return editView(p), nil
}

func (s *GRPCServer) ReviewEdit(ctx context.Context, req *api.ReviewEditRequest) (*api.EditProposal, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.edits.Review(ctx, userID, req.EditID, req.Approve)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Edit reviewed", "edit_id", p.ID, "status", p.Status, "reviewer_id", userID)
	return editView(p), nil
}

func (s *GRPCServer) ListPendingEdits(ctx context.Context, req *api.ListPendingEditsRequest) (*api.ListPendingEditsResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.edits.ListPending(ctx, userID, req.ItemID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	resp := &api.ListPendingEditsResponse{Edits: make([]api.EditProposal, 0, len(list))}
	for i := range list {
		resp.Edits = append(resp.Edits, *editView(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) AddToCollection(ctx context.Context, req *api.ItemRequest) (*emptypb.Empty, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.collections.Add(ctx, userID, req.ItemID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) RemoveFromCollection(ctx context.Context, req *api.ItemRequest) (*emptypb.Empty, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.collections.Remove(ctx, userID, req.ItemID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListCollection(ctx context.Context, _ *emptypb.Empty) (*api.ListCollectionResponse, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.collections.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListCollectionResponse{Items: itemViews(items, nil)}, nil
}

func itemViews(items []vault.Item, urls map[string]string) []api.ItemView {
	out := make([]api.ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, api.ItemView{Item: it, ImageURL: urls[it.ID]})
	}
	return out
}

func editView(p *models.EditProposal) *api.EditProposal {
	return &api.EditProposal{
		ID:         p.ID,
		ItemID:     p.ItemID,
		ProposerID: p.ProposerID,
		Fields:     p.Fields,
		Comment:    p.Comment,
		Status:     p.Status,
		ReviewerID: p.ReviewerID,
		CreatedAt:  p.CreatedAt,
	}
}
