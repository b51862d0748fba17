package service

import (
	"path/filepath"
	"testing"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
)

// testEnv wires the full service stack over a throwaway sqlite database
type testEnv struct {
	db *database.DB

	users *repository.UserRepository

	actors        *ActorService
	hierarchy     *HierarchyService
	daily         *DailyService
	activities    *ActivityService
	posts         *PostService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	kindergartenRepo := repository.NewKindergartenRepository(db)
	childRepo := repository.NewChildRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notifications := NewNotificationService(notificationRepo, userRepo, childRepo, nil)

	return &testEnv{
		db:            db,
		users:         userRepo,
		actors:        NewActorService(kindergartenRepo, childRepo),
		hierarchy:     NewHierarchyService(kindergartenRepo, childRepo, userRepo),
		daily:         NewDailyService(attendanceRepo, recordRepo, childRepo),
		activities:    NewActivityService(activityRepo, kindergartenRepo, childRepo),
		posts:         NewPostService(postRepo, kindergartenRepo, childRepo, notifications),
		notifications: notifications,
	}
}

func (e *testEnv) createUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(email, "x", "Test User", role)
	if err != nil {
		t.Fatalf("Failed to create %s user: %v", role, err)
	}
	return user
}

// loadActor rebuilds the actor from the affiliation tables, the way the
// auth middleware does per request
func (e *testEnv) loadActor(t *testing.T, user *models.User) authz.Actor {
	t.Helper()
	actor, err := e.actors.Load(user)
	if err != nil {
		t.Fatalf("Failed to load actor: %v", err)
	}
	return actor
}

// fixture is one kindergarten with a class, an assigned teacher and a
// placed child
type fixture struct {
	superadmin authz.Actor
	admin      authz.Actor
	teacher    authz.Actor
	parent     authz.Actor

	kindergarten *models.Kindergarten
	class        *models.Class
	child        *models.Child

	teacherUser *models.User
	parentUser  *models.User
}

// childIn builds a child placed in the fixture's class for a given parent
func childIn(fx *fixture, parentID int64) *models.Child {
	return &models.Child{
		Name:           "Sam",
		KindergartenID: fx.kindergarten.ID,
		ClassID:        fx.class.ID,
		ParentID:       parentID,
	}
}

func (e *testEnv) seedHierarchy(t *testing.T, tag string) *fixture {
	t.Helper()

	superadminUser := e.createUser(t, tag+"-root@example.com", models.RoleSuperadmin)
	superadmin := e.loadActor(t, superadminUser)

	kindergarten, err := e.hierarchy.CreateKindergarten(superadmin, "Sunny Meadow "+tag, "Springfield")
	if err != nil {
		t.Fatalf("Failed to create kindergarten: %v", err)
	}
	class, err := e.hierarchy.CreateClass(superadmin, "Bumblebees "+tag, kindergarten.ID)
	if err != nil {
		t.Fatalf("Failed to create class: %v", err)
	}

	adminUser := e.createUser(t, tag+"-admin@example.com", models.RoleAdmin)
	if _, err := e.hierarchy.AttachAdmin(superadmin, adminUser.ID, kindergarten.ID); err != nil {
		t.Fatalf("Failed to attach admin: %v", err)
	}

	teacherUser := e.createUser(t, tag+"-teacher@example.com", models.RoleTeacher)
	profile, err := e.hierarchy.AttachTeacher(superadmin, teacherUser.ID, kindergarten.ID)
	if err != nil {
		t.Fatalf("Failed to attach teacher: %v", err)
	}
	if _, err := e.hierarchy.AssignTeacherToClass(superadmin, profile.ID, class.ID); err != nil {
		t.Fatalf("Failed to assign teacher: %v", err)
	}

	parentUser := e.createUser(t, tag+"-parent@example.com", models.RoleParent)
	child, err := e.hierarchy.CreateChild(superadmin, &models.Child{
		Name:           "Mia",
		KindergartenID: kindergarten.ID,
		ClassID:        class.ID,
		ParentID:       parentUser.ID,
	})
	if err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}

	return &fixture{
		superadmin:   superadmin,
		admin:        e.loadActor(t, adminUser),
		teacher:      e.loadActor(t, teacherUser),
		parent:       e.loadActor(t, parentUser),
		kindergarten: kindergarten,
		class:        class,
		child:        child,
		teacherUser:  teacherUser,
		parentUser:   parentUser,
	}
}
