package authorization

// CanAccessResourceByOwnerID reports whether a user may act on a resource
// owned by someone. Support staff see everything; customers only their own.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsSupportStaff() {
		return true
	}
	return userID == resourceOwnerID
}
