package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/model"
	mongoSDK "github.com/Laisky/laisky-blog-content/library/db/mongo"
)

// CreateUser registers a new user after validating every field.
// A validation failure rejects the whole write.
func (s *Blog) CreateUser(ctx context.Context, input *dto.NewUser) (*model.User, error) {
	email, err := validateEmail(input.Email)
	if err != nil {
		return nil, err
	}
	username, err := validateUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if err = validateAge(input.Age); err != nil {
		return nil, err
	}
	roles, err := normalizeRoles(input.Roles)
	if err != nil {
		return nil, err
	}
	profile := input.Profile
	if err = validateProfile(&profile); err != nil {
		return nil, err
	}

	ts := gutils.Clock.GetUTCNow()
	user := &model.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
		Email:     email,
		Username:  username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Age:       input.Age,
		Roles:     roles,
		Profile:   profile,
		IsActive:  true,
	}

	if _, err = s.dao.GetUsersCol().InsertOne(ctx, user); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrConflict, "user %q", email)
		}

		return nil, errors.Wrapf(err, "insert user %q", email)
	}

	s.logger.Info("insert new user",
		zap.String("email", email), zap.String("username", username))
	return user, nil
}

// LoadUserByID load user by id
func (s *Blog) LoadUserByID(ctx context.Context, id string) (*model.User, error) {
	uid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	user := new(model.User)
	if err = s.dao.GetUsersCol().
		FindOne(ctx, bson.D{{Key: "_id", Value: uid}}).
		Decode(user); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrapf(model.ErrNotFound, "user %s", id)
		}

		return nil, errors.Wrap(err, "decode user")
	}

	return user, nil
}

// UpdateUser applies a partial update. The password field is not part of the
// patch shape, so it can never reach storage through this path.
func (s *Blog) UpdateUser(ctx context.Context, id string, patch *dto.UserPatch) (*model.User, error) {
	uid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Email != nil {
		email, err := validateEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if patch.Username != nil {
		username, err := validateUsername(*patch.Username)
		if err != nil {
			return nil, err
		}
		set["username"] = username
	}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Age != nil {
		if err = validateAge(*patch.Age); err != nil {
			return nil, err
		}
		set["age"] = *patch.Age
	}
	if patch.Roles != nil {
		roles, err := normalizeRoles(patch.Roles)
		if err != nil {
			return nil, err
		}
		set["roles"] = roles
	}
	if patch.Profile != nil {
		if err = validateProfile(patch.Profile); err != nil {
			return nil, err
		}
		set["profile"] = *patch.Profile
	}

	set["updated_at"] = gutils.Clock.GetUTCNow()

	result, err := s.dao.GetUsersCol().
		UpdateByID(ctx, uid, bson.M{"$set": set})
	if err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrConflict, "user %s", id)
		}

		return nil, errors.Wrapf(err, "update user %s", id)
	}
	if result.MatchedCount == 0 {
		return nil, errors.Wrapf(model.ErrNotFound, "user %s", id)
	}

	return s.LoadUserByID(ctx, id)
}

// SoftDeleteUser flips is_active to false; the record stays addressable.
func (s *Blog) SoftDeleteUser(ctx context.Context, id string) error {
	uid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := s.dao.GetUsersCol().UpdateByID(ctx, uid, bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": gutils.Clock.GetUTCNow(),
		},
	})
	if err != nil {
		return errors.Wrapf(err, "soft delete user %s", id)
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "user %s", id)
	}

	s.logger.Info("soft deleted user", zap.String("user", id))
	return nil
}

// HardDeleteUser removes the record entirely.
func (s *Blog) HardDeleteUser(ctx context.Context, id string) error {
	uid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := s.dao.GetUsersCol().DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return errors.Wrapf(err, "hard delete user %s", id)
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "user %s", id)
	}

	s.logger.Info("hard deleted user", zap.String("user", id))
	return nil
}

// TouchLastLogin records a successful authentication event from the
// external credential collaborator.
func (s *Blog) TouchLastLogin(ctx context.Context, id string) error {
	uid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := s.dao.GetUsersCol().UpdateByID(ctx, uid, bson.M{
		"$set": bson.M{"last_login": gutils.Clock.GetUTCNow()},
	})
	if err != nil {
		return errors.Wrapf(err, "touch last login for %s", id)
	}
	if result.MatchedCount == 0 {
		return errors.Wrapf(model.ErrNotFound, "user %s", id)
	}

	return nil
}
