// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the body of POST /auth/signup.
// It is bound from JSON or from a multipart form carrying an optional profilePic file.
type SignupReq struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
	Headline string `form:"headline" json:"headline"`
	Bio      string `form:"bio" json:"bio"`
}
