package handlers

import (
	userRepoPkg "gighaat/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single argument.
type HandlerBundle struct {
	// UserRepo backs the auth middleware's token-hash check.
	UserRepo userRepoPkg.UserRepository

	Auth         *AuthHandler
	Job          *JobHandler
	Freelancer   *FreelancerHandler
	Payment      *PaymentHandler
	Wallet       *WalletHandler
	Verification *VerificationHandler
	Admin        *AdminHandler
	Storage      *StorageHandler
}
