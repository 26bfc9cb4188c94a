package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_CartHelpers(t *testing.T) {
	bookA := primitive.NewObjectID()
	bookB := primitive.NewObjectID()
	u := &User{}

	u.UpsertCartItem(bookA, 1)
	u.UpsertCartItem(bookB, 3)
	u.UpsertCartItem(bookA, 2)

	assert.Len(t, u.Cart, 2)
	item, idx := u.CartItemFor(bookA)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, item.Quantity)

	u.RemoveCartItem(bookA)
	assert.Len(t, u.Cart, 1)
	item, idx = u.CartItemFor(bookA)
	assert.Nil(t, item)
	assert.Equal(t, -1, idx)

	// Removing an absent entry changes nothing.
	u.RemoveCartItem(bookA)
	assert.Len(t, u.Cart, 1)

	u.ClearCart()
	assert.Empty(t, u.Cart)
	assert.NotNil(t, u.Cart)
}

func TestUser_HasLiked(t *testing.T) {
	liked := primitive.NewObjectID()
	u := &User{LikedBooks: []primitive.ObjectID{liked}}

	assert.True(t, u.HasLiked(liked))
	assert.False(t, u.HasLiked(primitive.NewObjectID()))
}

func TestUser_OTPExpired(t *testing.T) {
	now := time.Now()

	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&User{}).OTPExpired(now), "no OTP on file is not expired")
	assert.False(t, (&User{ResetOTP: "123456", ResetOTPExp: &future}).OTPExpired(now))
	assert.True(t, (&User{ResetOTP: "123456", ResetOTPExp: &past}).OTPExpired(now))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
