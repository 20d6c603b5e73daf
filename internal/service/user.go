package service

import (
	"context"
	"net/url"

	"chem.app/api/internal/model"
	"chem.app/api/internal/query"
	"chem.app/api/internal/store"
)

// UserPage is one cursor page. NextCursor is set when the page is full and
// more users may follow.
type UserPage struct {
	query.Result[model.User]
	NextCursor *int64
}

type UserService interface {
	List(ctx context.Context, params url.Values) (*UserPage, error)
	Get(ctx context.Context, id int64) (*model.User, error)
}

type userService struct {
	userStore store.UserStore
}

func NewUserService(userStore store.UserStore) UserService {
	return &userService{userStore: userStore}
}

func (s *userService) List(ctx context.Context, params url.Values) (*UserPage, error) {
	c, err := userSpec.Parse(params)
	if err != nil {
		return nil, invalidQuery(err)
	}
	res, err := s.userStore.List(ctx, c)
	if err != nil {
		return nil, fromStore(err, userMessages, false)
	}

	page := &UserPage{Result: res}
	if n := len(res.Items); n > 0 && n == c.Page.Size() {
		next := res.Items[n-1].ID
		page.NextCursor = &next
	}
	return page, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fromStore(err, userMessages, false)
	}
	return user, nil
}
