package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/repository/postgres"
	"github.com/CoinLift/backend-coinlift/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// store is the shared in-memory state behind the fake repos. The atomic
// repo methods mutate it the way the real transactions do, so the
// counter and notification semantics stay observable from tests.
type store struct {
	users         map[uuid.UUID]*model.User
	edges         map[edgeKey]bool
	posts         map[uuid.UUID]*model.Post
	likes         map[likeKey]bool
	comments      map[uuid.UUID]*model.Comment
	tokens        []*model.AuthToken
	events        map[model.EventType]*model.Event
	notifications []*model.Notification
}

type edgeKey struct{ from, to uuid.UUID }

type likeKey struct{ user, post uuid.UUID }

func newStore() *store {
	return &store{
		users: make(map[uuid.UUID]*model.User),
		edges: make(map[edgeKey]bool),
		posts: make(map[uuid.UUID]*model.Post),
		likes: make(map[likeKey]bool),
		comments: make(map[uuid.UUID]*model.Comment),
		events: map[model.EventType]*model.Event{
			model.EventTypeFollow: {ID: 1, Type: model.EventTypeFollow, Text: "started following you."},
			model.EventTypeComment: {ID: 2, Type: model.EventTypeComment, Text: "commented on your post."},
			model.EventTypeReply: {ID: 3, Type: model.EventTypeReply, Text: "replied to your comment."},
		},
	}
}

func (s *store) addUser(username string) *model.User {
	user := &model.User{
		ID: uuid.New(),
		Email: username + "@example.com",
		Username: username,
		Role: "user",
		AvatarKey: DEFAULT_AVATAR_KEY,
	}
	s.users[user.ID] = user
	return user
}

func (s *store) addPost(ownerID uuid.UUID) *model.Post {
	post := &model.Post{
		ID: uuid.New(),
		UserID: ownerID,
		Content: "gm",
		CreatedAt: time.Now(),
	}
	s.posts[post.ID] = post
	return post
}

func (s *store) addComment(postID uuid.UUID, authorID uuid.UUID, parentID *uuid.UUID) *model.Comment {
	comment := &model.Comment{
		ID: uuid.New(),
		PostID: postID,
		UserID: authorID,
		ParentCommentID: parentID,
		Content: "wen moon",
		CreatedAt: time.Now(),
	}
	s.comments[comment.ID] = comment
	return comment
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return nil, uniqueViolation("users_username_key")
		}
		if existing.Email == user.Email {
			return nil, uniqueViolation("users_email_key")
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = &user
	return &user, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.s.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*model.User, error) {
	for _, user := range r.s.users {
		if strings.EqualFold(user.Username, emailOrUsername) || strings.EqualFold(user.Email, emailOrUsername) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsWithUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsWithEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range r.s.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeFollowerRepo struct{ s *store }

func (r *fakeFollowerRepo) Exists(ctx context.Context, from uuid.UUID, to uuid.UUID) (bool, error) {
	return r.s.edges[edgeKey{from, to}], nil
}

func (r *fakeFollowerRepo) Follow(ctx context.Context, edge model.Follower, n *model.Notification) error {
	key := edgeKey{edge.FromID, edge.ToID}
	if r.s.edges[key] {
		return uniqueViolation("followers_pkey")
	}
	r.s.edges[key] = true
	r.s.users[edge.FromID].FollowingCount++
	r.s.users[edge.ToID].FollowersCount++
	if n != nil {
		r.s.notifications = append(r.s.notifications, n)
	}
	return nil
}

func (r *fakeFollowerRepo) Unfollow(ctx context.Context, edge model.Follower) error {
	key := edgeKey{edge.FromID, edge.ToID}
	if !r.s.edges[key] {
		return pgx.ErrNoRows
	}
	delete(r.s.edges, key)
	if r.s.users[edge.FromID].FollowingCount > 0 {
		r.s.users[edge.FromID].FollowingCount--
	}
	if r.s.users[edge.ToID].FollowersCount > 0 {
		r.s.users[edge.ToID].FollowersCount--
	}
	return nil
}

func (r *fakeFollowerRepo) FindFollowers(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	var followers []*model.FollowerSummary
	for key := range r.s.edges {
		if key.to == userID {
			user := r.s.users[key.from]
			followers = append(followers, &model.FollowerSummary{ID: user.ID, Username: user.Username})
		}
	}
	return followers, nil
}

func (r *fakeFollowerRepo) FindFollowing(ctx context.Context, userID uuid.UUID) ([]*model.FollowerSummary, error) {
	var following []*model.FollowerSummary
	for key := range r.s.edges {
		if key.from == userID {
			user := r.s.users[key.to]
			following = append(following, &model.FollowerSummary{ID: user.ID, Username: user.Username})
		}
	}
	return following, nil
}

type fakePostRepo struct{ s *store }

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	r.s.posts[post.ID] = &post
	return &post, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := r.s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.s.posts[id]
	return ok, nil
}

type fakeLikeRepo struct{ s *store }

func (r *fakeLikeRepo) Exists(ctx context.Context, userID uuid.UUID, postID uuid.UUID) (bool, error) {
	return r.s.likes[likeKey{userID, postID}], nil
}

func (r *fakeLikeRepo) Add(ctx context.Context, like model.Like) error {
	key := likeKey{like.UserID, like.PostID}
	if r.s.likes[key] {
		return uniqueViolation("likes_user_id_post_id_key")
	}
	r.s.likes[key] = true
	r.s.posts[like.PostID].LikeCount++
	return nil
}

func (r *fakeLikeRepo) Remove(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error {
	key := likeKey{userID, postID}
	if !r.s.likes[key] {
		return pgx.ErrNoRows
	}
	delete(r.s.likes, key)
	if r.s.posts[postID].LikeCount > 0 {
		r.s.posts[postID].LikeCount--
	}
	return nil
}

type fakeCommentRepo struct{ s *store }

func (r *fakeCommentRepo) Create(ctx context.Context, comment model.Comment, n *model.Notification) (*model.Comment, error) {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	r.s.comments[comment.ID] = &comment
	if n != nil {
		r.s.notifications = append(r.s.notifications, n)
	}
	return &comment, nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, ok := r.s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) FindByPostAndID(ctx context.Context, postID uuid.UUID, commentID uuid.UUID) (*model.Comment, error) {
	comment, ok := r.s.comments[commentID]
	if !ok || comment.PostID != postID {
		return nil, pgx.ErrNoRows
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) FindByPost(ctx context.Context, postID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error) {
	var out []*model.CommentWithOwner
	for _, comment := range r.s.comments {
		if comment.PostID == postID && comment.ParentCommentID == nil {
			out = append(out, r.withOwner(comment, viewerID))
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) FindReplies(ctx context.Context, parentID uuid.UUID, viewerID uuid.UUID, limit int, offset int) ([]*model.CommentWithOwner, error) {
	var out []*model.CommentWithOwner
	for _, comment := range r.s.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == parentID {
			out = append(out, r.withOwner(comment, viewerID))
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) withOwner(comment *model.Comment, viewerID uuid.UUID) *model.CommentWithOwner {
	owner := r.s.users[comment.UserID]
	hasReplies := false
	for _, other := range r.s.comments {
		if other.ParentCommentID != nil && *other.ParentCommentID == comment.ID {
			hasReplies = true
			break
		}
	}
	return &model.CommentWithOwner{
		Comment: *comment,
		OwnerUsername: owner.Username,
		OwnerAvatarKey: owner.AvatarKey,
		HasReplies: hasReplies,
		ViewerFollowsOwner: r.s.edges[edgeKey{viewerID, comment.UserID}],
	}
}

func (r *fakeCommentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	comment, ok := r.s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for replyID, comment := range r.s.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == id {
			delete(r.s.comments, replyID)
		}
	}
	delete(r.s.comments, id)
	return nil
}

type fakeTokenRepo struct{ s *store }

func (r *fakeTokenRepo) Replace(ctx context.Context, token model.AuthToken) (*model.AuthToken, error) {
	for _, existing := range r.s.tokens {
		if existing.UserID == token.UserID && existing.Valid() {
			existing.Revoked = true
			existing.Expired = true
		}
	}
	token.ID = uuid.New()
	token.TokenType = model.TokenTypeBearer
	token.CreatedAt = time.Now()
	r.s.tokens = append(r.s.tokens, &token)
	return &token, nil
}

func (r *fakeTokenRepo) FindByToken(ctx context.Context, token string) (*model.AuthToken, error) {
	for _, existing := range r.s.tokens {
		if existing.Token == token {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeNotificationRepo struct{ s *store }

func (r *fakeNotificationRepo) FindEventByType(ctx context.Context, eventType model.EventType) (*model.Event, error) {
	event, ok := r.s.events[eventType]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return event, nil
}

func (r *fakeNotificationRepo) SeedEvents(ctx context.Context) error {
	return nil
}

// fakeRedis keeps the cache in a plain map so tests can assert on
// invalidation without a live server.
type fakeRedis struct {
	values map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (r *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.values[key] = fmt.Sprint(value)
	return nil
}

func (r *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(body)
	return nil
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

type fakePusher struct {
	pushes []pushRecord
}

type pushRecord struct {
	recipientID uuid.UUID
	payload     interface{}
}

func (p *fakePusher) Push(recipientID uuid.UUID, payload interface{}) {
	p.pushes = append(p.pushes, pushRecord{recipientID: recipientID, payload: payload})
}

type fakePublisher struct {
	published [][]byte
	failWith  error
}

func (p *fakePublisher) Publish(queue string, body []byte) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, body)
	return nil
}

type fakeStorage struct{}

func (fakeStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	return []byte(key), nil
}

func (fakeStorage) PutObject(ctx context.Context, key string, body []byte) error {
	return nil
}

type fixture struct {
	store *store
	redis *fakeRedis
	hub   *fakePusher
	mq    *fakePublisher
	repo  *repository.Repository
}

func newFixture() *fixture {
	s := newStore()
	rdb := newFakeRedis()
	return &fixture{
		store: s,
		redis: rdb,
		hub: &fakePusher{},
		mq: &fakePublisher{},
		repo: &repository.Repository{
			Postgres: &postgres.PostgresRepository{
				User: &fakeUserRepo{s: s},
				Follower: &fakeFollowerRepo{s: s},
				Post: &fakePostRepo{s: s},
				Like: &fakeLikeRepo{s: s},
				Comment: &fakeCommentRepo{s: s},
				Token: &fakeTokenRepo{s: s},
				Notification: &fakeNotificationRepo{s: s},
			},
			Redis: &redisrepo.RedisRepository{Default: rdb},
		},
	}
}

func (f *fixture) notifications() Notification {
	return newNotificationService(zap.NewNop(), f.repo, f.mq, f.hub)
}
