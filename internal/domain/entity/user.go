package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CartItem is one pending-purchase line in a user's cart.
type CartItem struct {
	BookID   primitive.ObjectID `bson:"book" json:"book"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// User is a registered account. Password always holds the bcrypt hash.
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password" json:"-"`
	Role        string               `bson:"role" json:"role"`
	LikedBooks  []primitive.ObjectID `bson:"liked_books" json:"likedBooks"`
	Cart        []CartItem           `bson:"cart" json:"cart"`
	ResetOTP    string               `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExp *time.Time           `bson:"reset_otp_expires_at,omitempty" json:"-"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasLiked(bookID primitive.ObjectID) bool {
	for _, id := range u.LikedBooks {
		if id == bookID {
			return true
		}
	}
	return false
}

// CartItemFor returns the cart entry for bookID and its index, or (nil, -1).
func (u *User) CartItemFor(bookID primitive.ObjectID) (*CartItem, int) {
	for i := range u.Cart {
		if u.Cart[i].BookID == bookID {
			return &u.Cart[i], i
		}
	}
	return nil, -1
}

// UpsertCartItem sets the quantity for bookID, appending a new entry if absent.
func (u *User) UpsertCartItem(bookID primitive.ObjectID, quantity int) {
	if item, _ := u.CartItemFor(bookID); item != nil {
		item.Quantity = quantity
		return
	}
	u.Cart = append(u.Cart, CartItem{BookID: bookID, Quantity: quantity})
}

// RemoveCartItem drops the entry for bookID. Removing an absent entry is a no-op.
func (u *User) RemoveCartItem(bookID primitive.ObjectID) {
	if _, idx := u.CartItemFor(bookID); idx >= 0 {
		u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
	}
}

func (u *User) ClearCart() {
	u.Cart = make([]CartItem, 0)
}

// OTPExpired reports whether the stored reset OTP has passed its expiry.
// A user without an OTP on file is not considered expired.
func (u *User) OTPExpired(now time.Time) bool {
	return u.ResetOTP != "" && u.ResetOTPExp != nil && now.After(*u.ResetOTPExp)
}
