package notifyhub_test

import (
	"testing"
	"time"

	"samadhan/backend/internal/models"
	"samadhan/backend/internal/notifyhub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hub runs without a broker in these tests: notifications go through
// the local broadcast buffer instead of Redis.

func TestRoomNames(t *testing.T) {
	assert.Equal(t, "admin_notifications", notifyhub.RoleRoom("admin"))
	assert.Equal(t, "user-1_room", notifyhub.UserRoom("user-1"))
}

func TestManager_RegisterJoinsUserRoom(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	client := newMockClient("user_A")
	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	hub.PublishToUser("user_A", models.Notification{Title: "hello"})
	time.Sleep(50 * time.Millisecond)

	select {
	case n := <-client.RecvChannel:
		assert.Equal(t, "hello", n.Title)
	default:
		t.Error("client did not receive user-room notification")
	}
}

func TestManager_RoleRoomRequiresJoin(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	adminClient := newMockClient("admin_A")
	userClient := newMockClient("user_B")
	hub.RegisterCh <- adminClient
	hub.RegisterCh <- userClient
	time.Sleep(50 * time.Millisecond)

	// Only the admin connection asks for the role room.
	hub.JoinCh <- notifyhub.JoinRequest{Client: adminClient, Room: notifyhub.RoleRoom("admin")}
	time.Sleep(50 * time.Millisecond)

	hub.PublishToRole("admin", models.Notification{Title: "New Complaint Received"})
	time.Sleep(50 * time.Millisecond)

	select {
	case n := <-adminClient.RecvChannel:
		assert.Equal(t, "New Complaint Received", n.Title)
	default:
		t.Error("admin did not receive role notification")
	}

	select {
	case <-userClient.RecvChannel:
		t.Error("non-member received role notification")
	default:
	}
}

func TestManager_PublishFillsDefaults(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	client := newMockClient("user_A")
	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	hub.PublishToUser("user_A", models.Notification{Title: "t", Message: "m"})
	time.Sleep(50 * time.Millisecond)

	n := <-client.RecvChannel
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, models.NotifyInfo, n.Type)
	assert.False(t, n.Timestamp.IsZero())
	assert.False(t, n.Read)
}

func TestManager_PublishToEmptyRoomIsSilentlyDropped(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	// Nobody is connected; this must neither block nor fail.
	hub.PublishToRole("admin", models.Notification{Title: "lost"})
	time.Sleep(50 * time.Millisecond)
}

func TestManager_UnregisterLeavesAllRooms(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	client := newMockClient("admin_A")
	hub.RegisterCh <- client
	hub.JoinCh <- notifyhub.JoinRequest{Client: client, Room: notifyhub.RoleRoom("admin")}
	time.Sleep(50 * time.Millisecond)

	hub.UnregisterCh <- client
	time.Sleep(50 * time.Millisecond)

	hub.PublishToRole("admin", models.Notification{Title: "after"})
	hub.PublishToUser("admin_A", models.Notification{Title: "after"})
	time.Sleep(50 * time.Millisecond)

	select {
	case <-client.RecvChannel:
		t.Error("unregistered client still receives notifications")
	default:
	}
}

func TestManager_SlowClientIsDropped(t *testing.T) {
	hub := notifyhub.NewManagerService(nil)
	go hub.Run()

	stalled := newStalledClient("user_A")
	healthy := newMockClient("user_A")
	hub.RegisterCh <- stalled
	hub.RegisterCh <- healthy
	time.Sleep(50 * time.Millisecond)

	hub.PublishToUser("user_A", models.Notification{Title: "first"})
	time.Sleep(50 * time.Millisecond)

	select {
	case <-stalled.Closed:
	default:
		t.Error("stalled client should have been closed")
	}

	// The healthy connection of the same user keeps receiving.
	hub.PublishToUser("user_A", models.Notification{Title: "second"})
	time.Sleep(50 * time.Millisecond)

	require.Len(t, healthy.RecvChannel, 2)
}
