package repository

import (
    "context"
    "fmt"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&model.User{}, &model.Question{}, &model.Answer{}))
    return db
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) *model.User {
    t.Helper()
    u := &model.User{ID: id, Username: username, Email: username + "@example.com", Password: "x"}
    require.NoError(t, db.Create(u).Error)
    return u
}

func seedQuestion(t *testing.T, db *gorm.DB, userID, subject, content string, createDate time.Time) *model.Question {
    t.Helper()
    q := &model.Question{Subject: subject, Content: content, UserID: userID, CreateDate: createDate}
    require.NoError(t, db.Create(q).Error)
    return q
}

func seedAnswer(t *testing.T, db *gorm.DB, questionID uint, userID, content string) *model.Answer {
    t.Helper()
    a := &model.Answer{QuestionID: questionID, UserID: userID, Content: content, CreateDate: time.Now()}
    require.NoError(t, db.Create(a).Error)
    return a
}

func TestListOrdersByCreateDateDescThenIDDesc(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
    old := seedQuestion(t, db, alice.ID, "oldest", "body", base.Add(-time.Hour))
    // 两条时间完全相同，靠 id 倒序打破平局
    tieA := seedQuestion(t, db, alice.ID, "tie a", "body", base)
    tieB := seedQuestion(t, db, alice.ID, "tie b", "body", base)
    newest := seedQuestion(t, db, alice.ID, "newest", "body", base.Add(time.Hour))

    list, total, err := repo.List(ctx, ListQuery{Page: 1})
    require.NoError(t, err)
    assert.EqualValues(t, 4, total)
    require.Len(t, list, 4)
    assert.Equal(t, newest.ID, list[0].ID)
    assert.Equal(t, tieB.ID, list[1].ID)
    assert.Equal(t, tieA.ID, list[2].ID)
    assert.Equal(t, old.ID, list[3].ID)
}

func TestListPaginationBounds(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    base := time.Now()
    for i := 0; i < 25; i++ {
        seedQuestion(t, db, alice.ID, fmt.Sprintf("q%02d", i), "body", base.Add(time.Duration(i)*time.Second))
    }

    page1, total, err := repo.List(ctx, ListQuery{Page: 1})
    require.NoError(t, err)
    assert.EqualValues(t, 25, total)
    assert.Len(t, page1, PageSize)

    page3, _, err := repo.List(ctx, ListQuery{Page: 3})
    require.NoError(t, err)
    assert.Len(t, page3, 5)

    // 越界页返回空，不报错
    page4, total, err := repo.List(ctx, ListQuery{Page: 4})
    require.NoError(t, err)
    assert.EqualValues(t, 25, total)
    assert.Empty(t, page4)

    // 页码 < 1 按第一页处理
    clamped, _, err := repo.List(ctx, ListQuery{Page: 0})
    require.NoError(t, err)
    assert.Len(t, clamped, PageSize)
    assert.Equal(t, page1[0].ID, clamped[0].ID)
}

func TestListKeywordSearchAndDedup(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    bob := seedUser(t, db, "u-bob", "bob")
    carol := seedUser(t, db, "u-carol", "carol")

    base := time.Now()
    python := seedQuestion(t, db, alice.ID, "Python tips", "how to level up", base)
    golang := seedQuestion(t, db, bob.ID, "Go tips", "idioms wanted", base.Add(time.Second))
    // carol 连发两条命中同一关键字的回答，问题仍只能出现一次
    seedAnswer(t, db, golang.ID, carol.ID, "try Rust instead")
    seedAnswer(t, db, golang.ID, carol.ID, "seriously, Rust is fine too")

    list, total, err := repo.List(ctx, ListQuery{Page: 1, Keyword: "tips"})
    require.NoError(t, err)
    assert.EqualValues(t, 2, total)
    require.Len(t, list, 2)
    assert.Equal(t, golang.ID, list[0].ID)
    assert.Equal(t, python.ID, list[1].ID)

    // 仅回答内容命中；两条命中回答只折叠成一条结果
    list, total, err = repo.List(ctx, ListQuery{Page: 1, Keyword: "rust"})
    require.NoError(t, err)
    assert.EqualValues(t, 1, total)
    require.Len(t, list, 1)
    assert.Equal(t, golang.ID, list[0].ID)
}

func TestListKeywordMatchesAuthorsAndAnswerAuthors(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    bob := seedUser(t, db, "u-bob", "bob")
    carol := seedUser(t, db, "u-carol", "carol")

    base := time.Now()
    qa := seedQuestion(t, db, alice.ID, "first", "body", base)
    qb := seedQuestion(t, db, bob.ID, "second", "body", base.Add(time.Second))
    seedAnswer(t, db, qb.ID, carol.ID, "an answer")

    // 提问者用户名
    list, _, err := repo.List(ctx, ListQuery{Page: 1, Keyword: "alice"})
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, qa.ID, list[0].ID)

    // 回答者用户名
    list, _, err = repo.List(ctx, ListQuery{Page: 1, Keyword: "carol"})
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, qb.ID, list[0].ID)

    // 大小写不敏感
    list, _, err = repo.List(ctx, ListQuery{Page: 1, Keyword: "ALICE"})
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, qa.ID, list[0].ID)

    // 无命中
    list, total, err := repo.List(ctx, ListQuery{Page: 1, Keyword: "nobody"})
    require.NoError(t, err)
    assert.EqualValues(t, 0, total)
    assert.Empty(t, list)
}

func TestListPreloadsAuthor(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    seedQuestion(t, db, alice.ID, "subject", "content", time.Now())

    list, _, err := repo.List(ctx, ListQuery{Page: 1})
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, "alice", list[0].Author.Username)
}

func TestUpdateTouchesOnlyMutableFields(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
    q := seedQuestion(t, db, alice.ID, "before", "old body", created)

    modified := created.Add(time.Hour)
    require.NoError(t, repo.Update(ctx, q.ID, "after", "new body", modified))

    got, err := repo.GetByID(ctx, q.ID)
    require.NoError(t, err)
    assert.Equal(t, "after", got.Subject)
    assert.Equal(t, "new body", got.Content)
    require.NotNil(t, got.ModifyDate)
    assert.True(t, got.ModifyDate.Equal(modified))
    assert.True(t, got.CreateDate.Equal(created))
    assert.Equal(t, alice.ID, got.UserID)
}

func TestDeleteCascadesAnswers(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    answerRepo := NewAnswerRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    bob := seedUser(t, db, "u-bob", "bob")
    q := seedQuestion(t, db, alice.ID, "subject", "content", time.Now())
    seedAnswer(t, db, q.ID, bob.ID, "answer one")
    seedAnswer(t, db, q.ID, bob.ID, "answer two")

    require.NoError(t, repo.Delete(ctx, q.ID))

    _, err := repo.GetByID(ctx, q.ID)
    assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

    // 不允许留下孤儿回答
    cnt, err := answerRepo.CountByQuestionID(ctx, q.ID)
    require.NoError(t, err)
    assert.Zero(t, cnt)
}

func TestGetDetailPreloadsAnswersWithAuthors(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQuestionRepository(db)
    ctx := context.Background()

    alice := seedUser(t, db, "u-alice", "alice")
    bob := seedUser(t, db, "u-bob", "bob")
    q := seedQuestion(t, db, alice.ID, "subject", "content", time.Now())
    seedAnswer(t, db, q.ID, bob.ID, "first answer")
    seedAnswer(t, db, q.ID, alice.ID, "second answer")

    got, err := repo.GetDetail(ctx, q.ID)
    require.NoError(t, err)
    assert.Equal(t, "alice", got.Author.Username)
    require.Len(t, got.Answers, 2)
    assert.Equal(t, "first answer", got.Answers[0].Content)
    assert.Equal(t, "bob", got.Answers[0].Author.Username)
}
