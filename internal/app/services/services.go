package services

// Services defined in this package:
// - AuthService: registration, login and token issuance
// - ClubService: club directory, proposals, membership and review
// - EventService: event listings, proposals, registration and review
// - AnnouncementService: the announcement feed and home page stats
