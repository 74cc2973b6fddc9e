package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	HuntServer
}

func NewServer(
	huntServer HuntServer,
) Server {
	return Server{
		HuntServer: huntServer,
	}
}
