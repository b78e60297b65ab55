package main

// @title           Hafla Store API
// @version         1.0
// @description     Storefront and back-office API for a party supplies retailer, including the bilingual store assistant

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT authentication header using the Bearer scheme. Example: "Bearer {token}"
