package main

// @title           GreenChain API
// @version         1.0
// @description     Marketplace de produtos perecíveis com agente de voz para gestores de estoque e intermediários
// @contact.name   GreenChain Support
// @contact.email  support@greenchain.local

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
